package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/tripledger/tripledger/internal/calendar"
)

type jsonDocument struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Days  []jsonDay `json:"days"`
}

type jsonDay struct {
	Date string `json:"date"`
	calendar.Assignment
}

// WriteJSON writes the calendar as a date-sorted JSON document.
func WriteJSON(w io.Writer, c *calendar.Calendar) error {
	doc := jsonDocument{
		Start: c.Start().Format(time.DateOnly),
		End:   c.End().Format(time.DateOnly),
		Days:  make([]jsonDay, 0, c.Len()),
	}

	for _, e := range entries(c) {
		doc.Days = append(doc.Days, jsonDay{
			Date:       e.Date.Format(time.DateOnly),
			Assignment: e.Assignment,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
