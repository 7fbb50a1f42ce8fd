// Package geo holds the spherical-earth helpers used for station lookups and
// the live feed. Coordinates are WGS84 degrees; distances come back in
// meters unless the name says otherwise.
package geo

import "math"

// EarthRadiusKm is the mean earth radius the distance functions assume
const EarthRadiusKm = 6371.0

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Haversine returns the great-circle distance in meters between two points.
// Identical points give exactly 0.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(radians(lat1))*math.Cos(radians(lat2))*sinLon*sinLon

	// rounding can push h a hair above 1 for antipodal points
	return 2 * EarthRadiusKm * 1000 * math.Asin(math.Sqrt(math.Min(1, h)))
}

// DistanceKm is Haversine in kilometers
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return Haversine(lat1, lon1, lat2, lon2) / 1000
}

// Bearing is the initial compass heading from the first point toward the
// second, in degrees clockwise from north within [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	from, to := radians(lat1), radians(lat2)
	dLon := radians(lon2 - lon1)

	east := math.Sin(dLon) * math.Cos(to)
	north := math.Cos(from)*math.Sin(to) - math.Sin(from)*math.Cos(to)*math.Cos(dLon)

	deg := math.Atan2(east, north) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
