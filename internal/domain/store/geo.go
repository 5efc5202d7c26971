package store

import "math"

const EarthRadiusKm = 6371.0

// Distance is the great-circle distance in km between two WGS84 points,
// using the same spherical law of cosines the SQL search evaluates.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lng2) - radians(lng1)

	cosC := math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda) + math.Sin(phi1)*math.Sin(phi2)
	// rounding can push identical points just past 1
	cosC = math.Max(-1, math.Min(1, cosC))

	return EarthRadiusKm * math.Acos(cosC)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
