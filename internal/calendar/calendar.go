// Package calendar maintains a range of dates with a travel location
// assigned to each.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/tripledger/tripledger/internal/geo"

	"github.com/rs/zerolog/log"
)

// Assignment is the per-date record of where the traveler was. Distance is
// only populated when the calendar carries a distance enricher. Assignments
// are plain values; the calendar stores an independent copy per date.
type Assignment struct {
	City        string          `json:"city"`
	Coordinates geo.Coordinates `json:"coordinates"`
	Distance    float64         `json:"distance"`
}

// Assigned reports whether the date has been given a location.
func (a Assignment) Assigned() bool {
	return a.City != ""
}

// Enricher derives additional assignment fields before a date is stamped.
// It runs once per stamping operation, not once per date.
type Enricher interface {
	Enrich(a *Assignment)
}

// Calendar owns a mapping from every date in an inclusive range to a
// location assignment. The key set is fixed at construction; stamping only
// overwrites values. Intended for single-threaded sequential use.
type Calendar struct {
	days   map[time.Time]Assignment
	table  *geo.Table
	enrich Enricher
	start  time.Time
	end    time.Time
}

// New builds a calendar with one entry per date in [start, end] inclusive.
// If defaultLocation is non-empty it must resolve in the table, and every
// date is initialized to it; otherwise all dates start unassigned. An end
// before start is a validation error.
func New(start, end time.Time, table *geo.Table, defaultLocation string, enrich Enricher) (*Calendar, error) {
	start = midnightUTC(start)
	end = midnightUTC(end)

	if end.Before(start) {
		return nil, fmt.Errorf("calendar end %s before start %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	var def Assignment
	if defaultLocation != "" {
		coords, err := table.Resolve(defaultLocation)
		if err != nil {
			return nil, err
		}
		def = Assignment{City: defaultLocation, Coordinates: coords}
		if enrich != nil {
			enrich.Enrich(&def)
		}
	}

	days := make(map[time.Time]Assignment)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days[d] = def
	}

	log.Debug().
		Str("start", start.Format(time.DateOnly)).
		Str("end", end.Format(time.DateOnly)).
		Str("default", defaultLocation).
		Int("days", len(days)).
		Msg("Calendar initialized")

	return &Calendar{days: days, table: table, enrich: enrich, start: start, end: end}, nil
}

// StayRange returns the dates occupied by a hotel stay: every date from the
// first morning (checkout minus nights-1 days) through checkout inclusive,
// nights dates in total. nights == 1 yields exactly the checkout date.
func StayRange(checkout time.Time, nights int) []time.Time {
	checkout = midnightUTC(checkout)

	dates := make([]time.Time, 0, nights)
	for d := checkout.AddDate(0, 0, -(nights - 1)); !d.After(checkout); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return dates
}

// SetLocation stamps every date of the stay with the place and its
// coordinates. The place is resolved before any mutation, so a failed
// lookup never leaves the calendar partially updated. Dates outside the
// calendar span are skipped silently; repeated identical calls are
// idempotent.
func (c *Calendar) SetLocation(checkout time.Time, nights int, place string) error {
	if nights < 1 {
		return fmt.Errorf("stay ending %s: nights must be at least 1, got %d",
			checkout.Format(time.DateOnly), nights)
	}

	coords, err := c.table.Resolve(place)
	if err != nil {
		return err
	}

	assignment := Assignment{City: place, Coordinates: coords}
	if c.enrich != nil {
		// Location-dependent, not date-dependent: enrich once per stay.
		c.enrich.Enrich(&assignment)
	}

	stamped := 0
	for _, day := range StayRange(checkout, nights) {
		if _, ok := c.days[day]; !ok {
			continue
		}
		c.days[day] = assignment
		stamped++
	}

	log.Debug().
		Str("place", place).
		Str("checkout", checkout.Format(time.DateOnly)).
		Int("nights", nights).
		Int("stamped", stamped).
		Msg("Stay recorded")

	return nil
}

// At returns the assignment for a date and whether the date is tracked by
// the calendar at all.
func (c *Calendar) At(date time.Time) (Assignment, bool) {
	a, ok := c.days[midnightUTC(date)]
	return a, ok
}

// Dates returns every tracked date in ascending order.
func (c *Calendar) Dates() []time.Time {
	dates := make([]time.Time, 0, len(c.days))
	for d := range c.days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return dates
}

// Start returns the first tracked date.
func (c *Calendar) Start() time.Time { return c.start }

// End returns the last tracked date.
func (c *Calendar) End() time.Time { return c.end }

// Len returns the number of tracked dates.
func (c *Calendar) Len() int { return len(c.days) }

// midnightUTC normalizes a timestamp to its calendar date. All map keys go
// through this, so lookups are insensitive to time-of-day and zone.
func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
