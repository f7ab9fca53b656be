package calendar

import (
	"time"

	"github.com/tripledger/tripledger/internal/geo"
)

// HomeDistance enriches assignments with the great-circle distance in miles
// from a fixed home coordinate.
type HomeDistance struct {
	Home geo.Coordinates
}

// Enrich sets the assignment's distance from home.
func (h HomeDistance) Enrich(a *Assignment) {
	a.Distance = geo.Haversine(h.Home, a.Coordinates)
}

// NewDistance builds a calendar spanning whole years, from Jan 1 of
// startYear through Dec 31 of endYear. Every date defaults to the home
// location at distance 0, and each stamped stay additionally records its
// distance from home.
func NewDistance(startYear, endYear int, home string, table *geo.Table) (*Calendar, error) {
	homeCoords, err := table.Resolve(home)
	if err != nil {
		return nil, err
	}

	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	return New(start, end, table, home, HomeDistance{Home: homeCoords})
}
