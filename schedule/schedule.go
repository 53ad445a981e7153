package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"sabor/models"
)

// DefaultInterval is the slot granularity in minutes used by the booking form.
const DefaultInterval = 20

// HourRange is an open-closed pair: Start inclusive, End exclusive of the
// last full slot hour.
type HourRange struct {
	Start int
	End   int
}

// Matches "11h às 22h" and variants ("11H as 22h", "de 11h até ... to 22h").
// Only the first occurrence counts.
var hoursPattern = regexp.MustCompile(`(?i)(\d{1,2})h[^0-9]*?(?:às|as|to)[^0-9]*?(\d{1,2})h`)

// ParseHours extracts the opening hours from the free-text schedule the
// establishment stores ("11h às 22h"). Returns false when no pattern matches.
func ParseHours(text string) (HourRange, bool) {
	m := hoursPattern.FindStringSubmatch(text)
	if m == nil {
		return HourRange{}, false
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return HourRange{}, false
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return HourRange{}, false
	}
	return HourRange{Start: start, End: end}, true
}

// Slots generates the bookable times for a calendar date at the given
// interval. Saturdays and Sundays use the weekend hours, every other day the
// weekday hours; the holiday text is never selected automatically. An empty
// or unparsable schedule yields an empty list, never an error.
//
// The minute counter restarts at :00 every hour, so intervals that do not
// divide 60 simply roll over at the hour boundary.
func Slots(s models.EstablishmentSettings, date time.Time, interval int) []string {
	text := s.Weekdays
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		text = s.Weekends
	}

	hours, ok := ParseHours(text)
	if !ok || hours.Start >= hours.End || interval <= 0 {
		return []string{}
	}

	var out []string
	for h := hours.Start; h < hours.End; h++ {
		for m := 0; m < 60; m += interval {
			out = append(out, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return out
}
