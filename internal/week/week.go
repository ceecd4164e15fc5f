package week

import (
	"fmt"
	"time"

	"payweek/internal/domain"
)

// Previous resolves the Monday..Sunday range of the week immediately before
// the week containing now, in a fixed UTC offset (no DST). The result is a
// pair of calendar dates normalized to UTC midnight.
//
// The job may fire on any weekday; shifting to local time, snapping to local
// midnight and stepping back (weekday+7) days always lands on the previous
// week's Monday, never the partial current week.
func Previous(now time.Time, offsetHours int) domain.DateWindow {
	loc := time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
	local := now.In(loc)

	// Monday = 0 .. Sunday = 6.
	dow := (int(local.Weekday()) + 6) % 7

	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	start := midnight.AddDate(0, 0, -(dow + 7))

	return domain.DateWindow{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}
