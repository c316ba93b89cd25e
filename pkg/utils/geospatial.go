package utils

import (
	"math"
)

// HaversineDistance calculates the distance between two points on Earth
// using the Haversine formula. Returns distance in kilometers.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371 // Earth's radius in kilometers

	lat1Rad := lat1 * math.Pi / 180
	lng1Rad := lng1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lng2Rad := lng2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlng := lng2Rad - lng1Rad

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dlng/2)*math.Sin(dlng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// IsWithinRadius checks if a point is within a specified radius of another point
func IsWithinRadius(centerLat, centerLng, pointLat, pointLng, radiusKm float64) bool {
	return HaversineDistance(centerLat, centerLng, pointLat, pointLng) <= radiusKm
}

// Point represents a geographical point
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox represents a rectangular area
type BoundingBox struct {
	NorthEast Point `json:"northEast"`
	SouthWest Point `json:"southWest"`
}

// GetBoundingBox creates a bounding box around a center point. Used as a
// cheap SQL pre-filter before the exact Haversine check.
func GetBoundingBox(centerLat, centerLng, radiusKm float64) BoundingBox {
	const earthRadius = 6371 // Earth's radius in kilometers

	angularDistance := radiusKm / earthRadius

	latMin := centerLat - (angularDistance * 180 / math.Pi)
	latMax := centerLat + (angularDistance * 180 / math.Pi)

	lngMin := centerLng - (angularDistance * 180 / math.Pi / math.Cos(centerLat*math.Pi/180))
	lngMax := centerLng + (angularDistance * 180 / math.Pi / math.Cos(centerLat*math.Pi/180))

	return BoundingBox{
		NorthEast: Point{Lat: latMax, Lng: lngMax},
		SouthWest: Point{Lat: latMin, Lng: lngMin},
	}
}

// IsPointInBoundingBox checks if a point is within a bounding box
func IsPointInBoundingBox(point Point, bbox BoundingBox) bool {
	return point.Lat >= bbox.SouthWest.Lat &&
		point.Lat <= bbox.NorthEast.Lat &&
		point.Lng >= bbox.SouthWest.Lng &&
		point.Lng <= bbox.NorthEast.Lng
}
