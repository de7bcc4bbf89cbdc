package timeutil

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 3600
	SecondsPerDay    = 86400
	SecondsPerYear   = 365.25 * SecondsPerDay

	// Big Bang occurred approximately 13.8 billion years ago.
	BigBangYearsAgo = 13_800_000_000

	UnixEpochYearsAfterBigBang = BigBangYearsAgo - 1970
)

// UnixEpochInTimeline is the Unix epoch expressed as seconds since the Big
// Bang, the zero point of the timeline axis.
var UnixEpochInTimeline = decimal.NewFromFloat(UnixEpochYearsAfterBigBang * SecondsPerYear)

// UnixToTimeline converts a Unix timestamp to timeline seconds.
func UnixToTimeline(unixSeconds int64) decimal.Decimal {
	return UnixEpochInTimeline.Add(decimal.NewFromInt(unixSeconds))
}

// TimeToTimeline converts a time.Time to timeline seconds.
func TimeToTimeline(t time.Time) decimal.Decimal {
	return UnixToTimeline(t.Unix())
}

// TimelineToUnix converts timeline seconds back to a Unix timestamp.
func TimelineToUnix(timelineSeconds decimal.Decimal) int64 {
	return timelineSeconds.Sub(UnixEpochInTimeline).IntPart()
}
