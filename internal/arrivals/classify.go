package arrivals

// Availability is the coarse bucket used to pick response phrasing.
type Availability int

const (
	NoBuses Availability = iota
	OneBus
	ManyBuses
)

func (a Availability) String() string {
	switch a {
	case OneBus:
		return "one_bus"
	case ManyBuses:
		return "many_buses"
	default:
		return "no_buses"
	}
}

// DefaultMaxBuses caps how many arrivals are read out in one response.
const DefaultMaxBuses = 5

// Classify buckets the records and caps them at max (DefaultMaxBuses when
// max is not positive). The earliest arrivals are kept, since the scrape
// preserves the table's soonest-first ordering. A nil or empty input is
// simply NoBuses; Classify never fails, so a bad scrape degrades to a
// polite "no buses" answer instead of an error.
func Classify(records []Record, max int) (Availability, []Record) {
	if max <= 0 {
		max = DefaultMaxBuses
	}

	switch {
	case len(records) == 0:
		return NoBuses, nil
	case len(records) == 1:
		return OneBus, records
	default:
		if len(records) > max {
			records = records[:max]
		}
		return ManyBuses, records
	}
}
