// Package respond builds the spoken replies sent back to the assistant.
package respond

import (
	"math/rand"
	"strings"

	"github.com/dublin-on-time/dublinontime/internal/arrivals"
)

// Response is a finished reply. ExpectFollowUp tells the platform to keep
// the microphone open for another user turn.
type Response struct {
	Text           string
	ExpectFollowUp bool
}

// Phrases holds the phrase banks used to vary responses. Empty banks fall
// back to the defaults, so deployments can override just the ones they want.
type Phrases struct {
	Greetings      []string `yaml:"greetings"`
	ErrorMessages  []string `yaml:"error_messages"`
	OneBusLeadIns  []string `yaml:"one_bus_lead_ins"`
	ManyBusLeadIns []string `yaml:"many_bus_lead_ins"`
	SignOffs       []string `yaml:"sign_offs"`
}

var defaultPhrases = Phrases{
	Greetings: []string{
		"Welcome to Dublin on time. Please tell me the bus stop number you would like me to check for you.",
		"Hello! Please tell me the stop number you would like me to verify.",
		"Hey there, please tell me the stop number you need me to check.",
		"Hi, please tell me the stop number.",
	},
	ErrorMessages: []string{
		"Sorry, I could not find this information. Please try later.",
		"It was not possible to get this information. Please try again later.",
	},
	OneBusLeadIns: []string{
		"One bus is coming.",
		"There is one bus coming.",
	},
	ManyBusLeadIns: []string{
		"These buses are coming soon:",
		"The following buses are coming:",
		"These are the buses coming to your bus stop:",
	},
	SignOffs: []string{
		"Goodbye!",
		"Have a nice day!",
		"Have a great day!",
		"Adios!",
	},
}

const noBusesMessage = "I could not find any buses arriving at this bus stop."

// DefaultDetailSeparator joins per-bus fragments for voice output. Text
// channels may prefer "\n".
const DefaultDetailSeparator = ", "

// Composer assembles responses from classified arrivals. It holds only
// read-only configuration and is safe for concurrent use.
type Composer struct {
	phrases   Phrases
	separator string
}

// NewComposer builds a Composer, defaulting any empty phrase bank and an
// empty separator.
func NewComposer(phrases Phrases, separator string) *Composer {
	if len(phrases.Greetings) == 0 {
		phrases.Greetings = defaultPhrases.Greetings
	}
	if len(phrases.ErrorMessages) == 0 {
		phrases.ErrorMessages = defaultPhrases.ErrorMessages
	}
	if len(phrases.OneBusLeadIns) == 0 {
		phrases.OneBusLeadIns = defaultPhrases.OneBusLeadIns
	}
	if len(phrases.ManyBusLeadIns) == 0 {
		phrases.ManyBusLeadIns = defaultPhrases.ManyBusLeadIns
	}
	if len(phrases.SignOffs) == 0 {
		phrases.SignOffs = defaultPhrases.SignOffs
	}
	if separator == "" {
		separator = DefaultDetailSeparator
	}
	return &Composer{phrases: phrases, separator: separator}
}

// Compose builds the reply for a classified set of arrivals. The records are
// read out in order; a sign-off is appended exactly once. Randomness only
// affects the lead-in and sign-off, never the bus details.
func (c *Composer) Compose(state arrivals.Availability, records []arrivals.Record, rng *rand.Rand) Response {
	if len(records) == 0 {
		state = arrivals.NoBuses
	}

	var body string
	switch state {
	case arrivals.OneBus:
		body = pick(c.phrases.OneBusLeadIns, rng) + " " + detail(records[0])
	case arrivals.ManyBuses:
		details := make([]string, 0, len(records))
		for _, rec := range records {
			details = append(details, detail(rec))
		}
		body = pick(c.phrases.ManyBusLeadIns, rng) + " " + strings.Join(details, c.separator)
	default:
		body = noBusesMessage
	}

	return Response{Text: body + " " + pick(c.phrases.SignOffs, rng)}
}

// AskForStop is the reprompt used when no usable stop number was heard.
func (c *Composer) AskForStop(rng *rand.Rand) Response {
	return Response{Text: pick(c.phrases.Greetings, rng), ExpectFollowUp: true}
}

// UpstreamError is the reply when the arrivals source could not be used.
// It ends the conversation turn: retrying immediately rarely helps.
func (c *Composer) UpstreamError(rng *rand.Rand) Response {
	return Response{Text: pick(c.phrases.ErrorMessages, rng)}
}

func detail(rec arrivals.Record) string {
	return rec.Service + " " + rec.Display
}

func pick(bank []string, rng *rand.Rand) string {
	return bank[rng.Intn(len(bank))]
}
