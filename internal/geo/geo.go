package geo

import "math"

// Earth radius in miles, matching the loadboard's great-circle convention.
const earthRadiusMiles = 3959

// DistanceMiles returns the haversine great-circle distance between two
// lat/lon points. Pure function, no failure modes.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusMiles * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
