package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/tripledger/tripledger/internal/calendar"
)

// WriteCSV writes one row per tracked date with the assigned place, its
// coordinates and the distance from home in miles.
func WriteCSV(w io.Writer, c *calendar.Calendar) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "city", "lat", "lon", "distance_miles"}); err != nil {
		return err
	}

	for _, e := range entries(c) {
		row := []string{
			e.Date.Format(time.DateOnly),
			e.City,
			strconv.FormatFloat(e.Coordinates.Lat, 'f', 4, 64),
			strconv.FormatFloat(e.Coordinates.Lon, 'f', 4, 64),
			strconv.FormatFloat(e.Distance, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
