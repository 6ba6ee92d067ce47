package catalog

import "math"

const earthRadiusKm = 6371.0

// NearbyRadiusKm is the search radius of the nearby listing.
const NearbyRadiusKm = 50.0

// Distance is the great-circle distance in km between two points given in
// degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// RoundKm rounds a distance to one decimal.
func RoundKm(d float64) float64 {
	return math.Round(d*10) / 10
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
