package utils

import "math"

// RadiusOfEarthInMeters is the mean earth radius used by Distance.
const RadiusOfEarthInMeters = 6371010.0

// CoordinateBounds is a lat/lon bounding box.
type CoordinateBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Distance returns the great-circle distance in meters between two points.
// Points closer than ~0.2 degrees use the equirectangular approximation,
// which is well within a meter at bike-share scales.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	dLonRad := (lon2 - lon1) * (math.Pi / 180)

	if math.Abs(lat2-lat1) < 0.2 && math.Abs(lon2-lon1) < 0.2 {
		x := dLonRad * math.Cos((lat1Rad+lat2Rad)/2)
		y := lat2Rad - lat1Rad
		return RadiusOfEarthInMeters * math.Sqrt(x*x+y*y)
	}

	y := math.Hypot(
		math.Cos(lat2Rad)*math.Sin(dLonRad),
		math.Cos(lat1Rad)*math.Sin(lat2Rad)-math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLonRad),
	)
	x := math.Sin(lat1Rad)*math.Sin(lat2Rad) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLonRad)

	return RadiusOfEarthInMeters * math.Atan2(y, x)
}

// CalculateBounds returns the box that contains every point within distance
// meters of (lat, lon).
func CalculateBounds(lat, lon, distance float64) CoordinateBounds {
	latRadians := lat * math.Pi / 180
	lonRadians := lon * math.Pi / 180

	latOffset := distance / RadiusOfEarthInMeters
	lonOffset := distance / (math.Cos(latRadians) * RadiusOfEarthInMeters)

	return CoordinateBounds{
		MinLat: (latRadians - latOffset) * 180 / math.Pi,
		MaxLat: (latRadians + latOffset) * 180 / math.Pi,
		MinLon: (lonRadians - lonOffset) * 180 / math.Pi,
		MaxLon: (lonRadians + lonOffset) * 180 / math.Pi,
	}
}

// ValidCoordinate reports whether lat/lon lie on the globe.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
