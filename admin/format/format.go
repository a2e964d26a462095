// Package format renders timestamps for the metadata card.
//
// Two tiers: minute-level relative phrasing is only meaningful for recent
// events ("5 minutes ago"), while older events read better as
// calendar-relative or absolute text ("Yesterday at 2:30 PM") instead of
// "1423 minutes ago".
package format

import (
	"fmt"
	"math"
	"time"
)

// timeNow is swapped out in tests to pin "now".
var timeNow = time.Now

// The threshold in minutes below which a date counts as "recent".
const recentThresholdMinutes = 60

const (
	timeLayout     = "3:04:05 PM"
	dateTimeLayout = "1/2/2006, 3:04:05 PM"
)

// RelativeDateTextBuilder supplies the surrounding text for each calendar
// bucket, so callers can plug in translated phrases.
type RelativeDateTextBuilder struct {
	Today     func(formattedTime string) string
	Yesterday func(formattedTime string) string
	Other     func(formattedDateTime string) string
}

// RelativeDate buckets a timestamp by calendar day in local time: same day
// as now, the day before, or anything else.
func RelativeDate(date time.Time, tb RelativeDateTextBuilder) string {
	now := timeNow()
	local := date.In(now.Location())

	if sameCalendarDay(local, now) {
		return tb.Today(local.Format(timeLayout))
	}
	if sameCalendarDay(local, now.AddDate(0, 0, -1)) {
		return tb.Yesterday(local.Format(timeLayout))
	}
	return tb.Other(local.Format(dateTimeLayout))
}

// RecentTime returns a minute-granularity relative phrase for dates less
// than an hour old, and delegates everything else to fallback. Elapsed
// minutes are floored, so a date half a minute in the future reads as
// "in 1 minute".
func RecentTime(date time.Time, fallback func(time.Time) string) string {
	minutes := int(math.Floor(timeNow().Sub(date).Minutes()))
	if minutes >= recentThresholdMinutes {
		return fallback(date)
	}
	return minutePhrase(minutes)
}

func minutePhrase(minutes int) string {
	switch {
	case minutes < -1:
		return fmt.Sprintf("in %d minutes", -minutes)
	case minutes == -1:
		return "in 1 minute"
	case minutes == 0:
		return "this minute"
	case minutes == 1:
		return "1 minute ago"
	default:
		return fmt.Sprintf("%d minutes ago", minutes)
	}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
