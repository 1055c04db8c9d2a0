package respond

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dublin-on-time/dublinontime/internal/arrivals"
)

func testRecords() []arrivals.Record {
	return []arrivals.Record{
		{Service: "46A", Kind: arrivals.KindDue, Display: "is due"},
		{Service: "145", Kind: arrivals.KindClockTime, Display: "is coming at 22 05"},
		{Service: "39", Kind: arrivals.KindRelativeMinutes, Display: "10 minutes"},
	}
}

func TestComposeNoBuses(t *testing.T) {
	c := NewComposer(Phrases{}, "")
	resp := c.Compose(arrivals.NoBuses, nil, rand.New(rand.NewSource(1)))

	if !strings.Contains(resp.Text, "could not find any buses") {
		t.Errorf("text = %q, want the no-buses apology", resp.Text)
	}
	if strings.Contains(resp.Text, "is due") || strings.Contains(resp.Text, "coming at") {
		t.Errorf("no-buses response must not contain bus details: %q", resp.Text)
	}
	if resp.ExpectFollowUp {
		t.Error("ExpectFollowUp = true, want false")
	}
}

func TestComposeOneBus(t *testing.T) {
	c := NewComposer(Phrases{}, "")
	records := testRecords()[:1]
	resp := c.Compose(arrivals.OneBus, records, rand.New(rand.NewSource(1)))

	if !strings.Contains(resp.Text, "46A is due") {
		t.Errorf("text = %q, want the single detail fragment", resp.Text)
	}
	if got := strings.Count(resp.Text, "is due"); got != 1 {
		t.Errorf("found %d detail fragments, want exactly 1", got)
	}
}

func TestComposeManyBuses(t *testing.T) {
	c := NewComposer(Phrases{}, "")
	records := testRecords()
	resp := c.Compose(arrivals.ManyBuses, records, rand.New(rand.NewSource(1)))

	wantDetails := "46A is due, 145 is coming at 22 05, 39 10 minutes"
	if !strings.Contains(resp.Text, wantDetails) {
		t.Errorf("text = %q, want details %q in order", resp.Text, wantDetails)
	}
	if !strings.HasSuffix(resp.Text, "!") {
		t.Errorf("text = %q, want a sign-off at the end", resp.Text)
	}
}

func TestComposeCustomSeparator(t *testing.T) {
	c := NewComposer(Phrases{}, "\n")
	resp := c.Compose(arrivals.ManyBuses, testRecords(), rand.New(rand.NewSource(1)))

	if !strings.Contains(resp.Text, "46A is due\n145 is coming at 22 05") {
		t.Errorf("text = %q, want newline-joined details", resp.Text)
	}
}

func TestComposeDeterministicWithFixedSeed(t *testing.T) {
	c := NewComposer(Phrases{}, "")
	records := testRecords()

	first := c.Compose(arrivals.ManyBuses, records, rand.New(rand.NewSource(42)))
	second := c.Compose(arrivals.ManyBuses, records, rand.New(rand.NewSource(42)))
	if first != second {
		t.Errorf("same seed produced different responses:\n%q\n%q", first.Text, second.Text)
	}
}

func TestComposeVariationNeverTouchesDetails(t *testing.T) {
	c := NewComposer(Phrases{}, "")
	records := testRecords()
	wantDetails := "46A is due, 145 is coming at 22 05, 39 10 minutes"

	for seed := int64(0); seed < 20; seed++ {
		resp := c.Compose(arrivals.ManyBuses, records, rand.New(rand.NewSource(seed)))
		if !strings.Contains(resp.Text, wantDetails) {
			t.Fatalf("seed %d: text = %q, details changed", seed, resp.Text)
		}
	}
}

func TestAskForStop(t *testing.T) {
	c := NewComposer(Phrases{}, "")
	resp := c.AskForStop(rand.New(rand.NewSource(1)))

	if !resp.ExpectFollowUp {
		t.Error("ExpectFollowUp = false, want true for a reprompt")
	}
	if !strings.Contains(strings.ToLower(resp.Text), "stop number") {
		t.Errorf("text = %q, want a stop-number prompt", resp.Text)
	}
}

func TestUpstreamError(t *testing.T) {
	c := NewComposer(Phrases{}, "")
	resp := c.UpstreamError(rand.New(rand.NewSource(1)))

	if resp.ExpectFollowUp {
		t.Error("ExpectFollowUp = true, want false to end the turn")
	}
	if !strings.Contains(resp.Text, "try") {
		t.Errorf("text = %q, want an apology asking to try later", resp.Text)
	}
}

func TestPhraseBankOverride(t *testing.T) {
	c := NewComposer(Phrases{SignOffs: []string{"Slán!"}}, "")
	resp := c.Compose(arrivals.OneBus, testRecords()[:1], rand.New(rand.NewSource(1)))

	if !strings.HasSuffix(resp.Text, "Slán!") {
		t.Errorf("text = %q, want the overridden sign-off", resp.Text)
	}
}
