package types

// PrecisionLevel describes how precisely an event's timestamp is known.
// The set is closed; unknown values are rejected, never coerced.
type PrecisionLevel string

const (
	PrecisionNanosecond    PrecisionLevel = "nanosecond"
	PrecisionMicrosecond   PrecisionLevel = "microsecond"
	PrecisionMillisecond   PrecisionLevel = "millisecond"
	PrecisionSecond        PrecisionLevel = "second"
	PrecisionMinute        PrecisionLevel = "minute"
	PrecisionHour          PrecisionLevel = "hour"
	PrecisionDay           PrecisionLevel = "day"
	PrecisionWeek          PrecisionLevel = "week"
	PrecisionMonth         PrecisionLevel = "month"
	PrecisionYear          PrecisionLevel = "year"
	PrecisionDecade        PrecisionLevel = "decade"
	PrecisionCentury       PrecisionLevel = "century"
	PrecisionThousandYears PrecisionLevel = "thousand_years"
	PrecisionMillionYears  PrecisionLevel = "million_years"
	PrecisionBillionYears  PrecisionLevel = "billion_years"
)

var precisionLevels = map[PrecisionLevel]struct{}{
	PrecisionNanosecond:    {},
	PrecisionMicrosecond:   {},
	PrecisionMillisecond:   {},
	PrecisionSecond:        {},
	PrecisionMinute:        {},
	PrecisionHour:          {},
	PrecisionDay:           {},
	PrecisionWeek:          {},
	PrecisionMonth:         {},
	PrecisionYear:          {},
	PrecisionDecade:        {},
	PrecisionCentury:       {},
	PrecisionThousandYears: {},
	PrecisionMillionYears:  {},
	PrecisionBillionYears:  {},
}

func (p PrecisionLevel) Valid() bool {
	_, ok := precisionLevels[p]
	return ok
}
