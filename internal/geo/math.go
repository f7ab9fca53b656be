package geo

import "math"

// EarthMeanRadiusMiles is the mean Earth radius used for all great-circle
// distance calculations.
const EarthMeanRadiusMiles = 3958.7613

const degToRad = math.Pi / 180

// Haversine returns the great-circle distance in miles between two points
// using the Haversine formula on a spherical Earth of mean radius.
//
// Accuracy is bounded by the spherical approximation; the result is not
// geodesic-exact. Identical points yield 0.
func Haversine(from, to Coordinates) float64 {
	phi1 := from.Lat * degToRad
	phi2 := to.Lat * degToRad
	deltaPhi := (to.Lat - from.Lat) * degToRad
	deltaLambda := (to.Lon - from.Lon) * degToRad

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)

	return 2 * EarthMeanRadiusMiles * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
