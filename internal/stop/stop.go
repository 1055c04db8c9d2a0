// Package stop resolves free-form spoken text into a numeric bus stop reference.
package stop

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoStopNumber means the text contained nothing resembling a stop number.
// Callers should reprompt the user rather than treat this as a failure.
var ErrNoStopNumber = errors.New("no stop number in input")

// ID is a numeric bus stop reference as used by the RTPI site.
type ID int

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Parse extracts a stop ID from raw user text. Speech transcription mangles
// stop numbers in predictable ways, which Parse undoes:
//
//   - slashes are dropped ("24/72" heard for "2472")
//   - "<a> to <b>" is re-joined with a literal 2, since "two" in the middle
//     of a number gets transcribed as "to" ("70 to 94" means "7294")
//   - a decimal fraction is discarded ("12.5" means stop 12)
func Parse(text string) (ID, error) {
	if text == "" {
		return 0, ErrNoStopNumber
	}

	text = strings.ReplaceAll(text, "/", "")

	digits, ok := spliceCompound(text)
	if !ok {
		if dot := strings.Index(text, "."); dot >= 0 {
			text = text[:dot]
		}
		// Transcription sometimes spaces out digits ("1 2 3").
		text = strings.Join(strings.Fields(text), "")
		digits = firstDigitRun(text)
	}
	if digits == "" {
		return 0, ErrNoStopNumber
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, ErrNoStopNumber
	}
	return ID(n), nil
}

// spliceCompound handles the "70 to 94" transcription pattern. The left
// number carries a spurious trailing zero ("seventy" for the spoken
// "seven...") which is dropped before the parts are joined around a "2".
func spliceCompound(text string) (string, bool) {
	left, right, found := strings.Cut(text, " to ")
	if !found {
		return "", false
	}

	leftDigits := firstDigitRun(left)
	rightDigits := firstDigitRun(right)
	if leftDigits == "" || rightDigits == "" {
		return "", false
	}

	if len(leftDigits) > 1 && strings.HasSuffix(leftDigits, "0") {
		leftDigits = leftDigits[:len(leftDigits)-1]
	}
	return leftDigits + "2" + rightDigits, true
}

// firstDigitRun returns the first contiguous run of digits in s, or "".
func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
