// Package export renders a populated travel calendar into interchange
// formats for reporting and visualization.
package export

import (
	"strings"
	"time"

	"github.com/tripledger/tripledger/internal/calendar"
	"github.com/tripledger/tripledger/internal/geo"
)

// Entry pairs a tracked date with its assignment, in calendar order.
type Entry struct {
	Date time.Time
	calendar.Assignment
}

// entries flattens the calendar into a date-sorted slice for exporters.
func entries(c *calendar.Calendar) []Entry {
	out := make([]Entry, 0, c.Len())
	for _, d := range c.Dates() {
		a, _ := c.At(d)
		out = append(out, Entry{Date: d, Assignment: a})
	}

	return out
}

// displayName returns the last segment of a hierarchical place name,
// e.g. "Japan/Tokyo" -> "Tokyo".
func displayName(place string) string {
	segments := strings.Split(place, geo.PathSeparator)
	return segments[len(segments)-1]
}
