package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tripledger/tripledger/internal/calendar"
)

const icsProductID = "-//tripledger//Travel Calendar//EN"

// WriteICS writes an iCalendar feed with one all-day event per contiguous
// run of dates spent in the same place away from home, so each stay shows
// as a single block. Designed for calendar subscriptions: METHOD:PUBLISH,
// no alarms.
func WriteICS(w io.Writer, c *calendar.Calendar, name, home string) error {
	var b strings.Builder

	fmt.Fprintln(&b, "BEGIN:VCALENDAR")
	fmt.Fprintln(&b, "VERSION:2.0")
	fmt.Fprintf(&b, "PRODID:%s\n", icsProductID)
	fmt.Fprintln(&b, "METHOD:PUBLISH")
	fmt.Fprintf(&b, "X-WR-CALNAME:%s\n", name)
	fmt.Fprintln(&b, "CALSCALE:GREGORIAN")

	days := entries(c)
	stamp := time.Now().UTC().Format("20060102T150405Z")

	for i := 0; i < len(days); {
		e := days[i]
		if !e.Assigned() || e.City == home {
			i++
			continue
		}

		// Extend the run while the place stays the same
		j := i + 1
		for j < len(days) && days[j].City == e.City {
			j++
		}
		last := days[j-1]

		uid := fmt.Sprintf("%s-%s@tripledger",
			e.Date.Format("20060102"), strings.ReplaceAll(e.City, " ", "-"))

		fmt.Fprintln(&b, "BEGIN:VEVENT")
		fmt.Fprintf(&b, "UID:%s\n", uid)
		fmt.Fprintf(&b, "DTSTAMP:%s\n", stamp)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\n", e.Date.Format("20060102"))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\n", last.Date.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(&b, "SUMMARY:%s\n", displayName(e.City))
		fmt.Fprintf(&b, "DESCRIPTION:%s (%.1f miles from home)\n", e.City, e.Distance)
		fmt.Fprintf(&b, "LOCATION:%s\n", e.City)
		fmt.Fprintln(&b, "END:VEVENT")

		i = j
	}

	fmt.Fprintln(&b, "END:VCALENDAR")

	_, err := io.WriteString(w, b.String())

	return err
}
