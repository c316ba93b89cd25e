package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		assert.Zero(t, HaversineDistance(12.9716, 77.5946, 12.9716, 77.5946))
	})

	t.Run("bengaluru to mysuru", func(t *testing.T) {
		// Straight-line distance is roughly 128 km.
		d := HaversineDistance(12.9716, 77.5946, 12.2958, 76.6394)
		assert.InDelta(t, 128, d, 5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(12.9716, 77.5946, 13.0827, 80.2707)
		b := HaversineDistance(13.0827, 80.2707, 12.9716, 77.5946)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := HaversineDistance(12.0, 77.0, 13.0, 77.0)
		assert.InDelta(t, 111.2, d, 1)
	})
}

func TestIsWithinRadius(t *testing.T) {
	center := Point{Lat: 12.9716, Lng: 77.5946}
	nearby := Point{Lat: 13.0166, Lng: 77.5946} // ~5 km north

	assert.True(t, IsWithinRadius(center.Lat, center.Lng, nearby.Lat, nearby.Lng, 10))
	assert.False(t, IsWithinRadius(center.Lat, center.Lng, nearby.Lat, nearby.Lng, 3))
}

func TestGetBoundingBox(t *testing.T) {
	bbox := GetBoundingBox(12.9716, 77.5946, 10)

	assert.Less(t, bbox.SouthWest.Lat, 12.9716)
	assert.Greater(t, bbox.NorthEast.Lat, 12.9716)
	assert.Less(t, bbox.SouthWest.Lng, 77.5946)
	assert.Greater(t, bbox.NorthEast.Lng, 77.5946)

	// The box must cover every point actually inside the radius.
	inside := Point{Lat: 13.0166, Lng: 77.5946}
	assert.True(t, IsPointInBoundingBox(inside, bbox))

	farNorth := Point{Lat: 13.5, Lng: 77.5946}
	assert.False(t, IsPointInBoundingBox(farNorth, bbox))
}

func TestIsPointInBoundingBox(t *testing.T) {
	bbox := BoundingBox{
		SouthWest: Point{Lat: 10, Lng: 70},
		NorthEast: Point{Lat: 14, Lng: 80},
	}

	assert.True(t, IsPointInBoundingBox(Point{Lat: 12, Lng: 75}, bbox))
	assert.True(t, IsPointInBoundingBox(Point{Lat: 10, Lng: 70}, bbox)) // edges are inclusive
	assert.False(t, IsPointInBoundingBox(Point{Lat: 15, Lng: 75}, bbox))
	assert.False(t, IsPointInBoundingBox(Point{Lat: 12, Lng: 81}, bbox))
}
