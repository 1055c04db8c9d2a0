// Package arrivals turns scraped arrival rows into classified, speakable records.
package arrivals

import "strings"

// Row is one raw (service, time) pair as scraped from the RTPI table.
// No guarantees about its contents.
type Row struct {
	Service string
	Time    string
}

// Kind describes how a scraped time value was understood.
type Kind int

const (
	// KindDue means the bus is arriving now ("Due").
	KindDue Kind = iota
	// KindClockTime means a wall-clock arrival time ("22:05").
	KindClockTime
	// KindRelativeMinutes means minutes until arrival ("12 Mins"), or any
	// time text we could not otherwise recognise, passed through as-is.
	KindRelativeMinutes
)

// Record is the normalized form of a Row. Display is the spoken fragment for
// the arrival time, without the service label.
type Record struct {
	Service string
	Kind    Kind
	Display string
}

// DefaultClockSeparator replaces the colon in clock times so "22:05" is
// spoken as "22 05" rather than read as punctuation.
const DefaultClockSeparator = " "

// Normalize converts scraped rows into records, one per row in the same
// order. Rows are never dropped: an unrecognisable time value still produces
// a record with its text passed through.
func Normalize(rows []Row, clockSep string) []Record {
	if clockSep == "" {
		clockSep = DefaultClockSeparator
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeRow(row, clockSep))
	}
	return records
}

func normalizeRow(row Row, clockSep string) Record {
	rec := Record{Service: row.Service}

	switch {
	case strings.EqualFold(row.Time, "due"):
		rec.Kind = KindDue
		rec.Display = "is due"
	case strings.Contains(row.Time, ":"):
		rec.Kind = KindClockTime
		rec.Display = "is coming at " + strings.ReplaceAll(row.Time, ":", clockSep)
	default:
		rec.Kind = KindRelativeMinutes
		rec.Display = strings.ReplaceAll(row.Time, "Mins", "minutes")
	}
	return rec
}
