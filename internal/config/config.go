// Package config handles trip file loading and shared data structures.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Trip represents the root trip file structure: the tracked year range, the
// home location, the coordinate reference file and the list of hotel stays.
type Trip struct {
	Coordinates string `yaml:"coordinates"`
	Home        string `yaml:"home"`
	Stays       []Stay `yaml:"stays"`
	StartYear   int    `yaml:"start_year"`
	EndYear     int    `yaml:"end_year"`
}

// Stay is one hotel booking: the checkout date (YYYY-MM-DD), the number of
// nights and the place name as it appears in the coordinate table.
type Stay struct {
	Checkout string `yaml:"checkout"`
	Location string `yaml:"location"`
	Nights   int    `yaml:"nights"`
}

// CheckoutDate parses the stay's checkout date.
func (s Stay) CheckoutDate() (time.Time, error) {
	return time.Parse(time.DateOnly, s.Checkout)
}

// Load reads and parses the YAML trip file from the specified path and
// validates it enough to fail before any calendar work starts.
func Load(path string) (*Trip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var trip Trip
	if err := yaml.Unmarshal(data, &trip); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if trip.Coordinates == "" {
		return nil, fmt.Errorf("%s: coordinates file not set", path)
	}
	if trip.Home == "" {
		return nil, fmt.Errorf("%s: home location not set", path)
	}
	if trip.StartYear == 0 || trip.EndYear == 0 {
		return nil, fmt.Errorf("%s: start_year and end_year are required", path)
	}
	if trip.EndYear < trip.StartYear {
		return nil, fmt.Errorf("%s: end_year %d before start_year %d",
			path, trip.EndYear, trip.StartYear)
	}

	for i, stay := range trip.Stays {
		if _, err := stay.CheckoutDate(); err != nil {
			return nil, fmt.Errorf("%s: stay %d: bad checkout date %q (want YYYY-MM-DD)",
				path, i+1, stay.Checkout)
		}
		if stay.Nights < 1 {
			return nil, fmt.Errorf("%s: stay %d (%s): nights must be at least 1, got %d",
				path, i+1, stay.Checkout, stay.Nights)
		}
		if stay.Location == "" {
			return nil, fmt.Errorf("%s: stay %d (%s): location not set",
				path, i+1, stay.Checkout)
		}
	}

	return &trip, nil
}
