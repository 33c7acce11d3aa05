// Package geo provides the great-circle distance calculation shared by
// the trip linker's dwell-buffer check and the tour extractor's
// anchor-distance classification.
package geo

import "github.com/golang/geo/s2"

// EarthRadiusMeters is Earth's mean radius, used to convert angular
// distance to meters.
const EarthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two WGS84
// points, in meters.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceTo returns the great-circle distance from p to other, in
// meters.
func (p Point) DistanceTo(other Point) float64 {
	return HaversineMeters(p.Lat, p.Lon, other.Lat, other.Lon)
}

// Within reports whether other is within radiusMeters of p.
func (p Point) Within(other Point, radiusMeters float64) bool {
	return p.DistanceTo(other) <= radiusMeters
}
