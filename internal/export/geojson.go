package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/tripledger/tripledger/internal/calendar"
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties"`
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
}

// Geometry represents the geometry of a feature (Point here).
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [Lon, Lat]
}

// Collect builds a FeatureCollection with one Point feature per visited
// place, carrying the dates spent there and the distance from home.
// Features appear in order of first visit.
func Collect(c *calendar.Calendar) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	index := make(map[string]int)

	for _, e := range entries(c) {
		if !e.Assigned() {
			continue
		}

		if i, ok := index[e.City]; ok {
			props := fc.Features[i].Properties
			props["dates"] = append(props["dates"].([]string), e.Date.Format(time.DateOnly))
			props["days"] = props["days"].(int) + 1
			continue
		}

		index[e.City] = len(fc.Features)
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{e.Coordinates.Lon, e.Coordinates.Lat},
			},
			Properties: map[string]interface{}{
				"name":           displayName(e.City),
				"place":          e.City,
				"dates":          []string{e.Date.Format(time.DateOnly)},
				"days":           1,
				"distance_miles": e.Distance,
			},
		})
	}

	return fc
}

// WriteGeoJSON writes the visited places as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, c *calendar.Calendar) error {
	return json.NewEncoder(w).Encode(Collect(c))
}
