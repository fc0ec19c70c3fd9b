package geotrack

import (
	"math"

	"github.com/jftuga/geodist"
)

// HaversineKm returns the great-circle distance in kilometers on a sphere of
// radius 6371 km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := geodist.HaversineDistance(
		geodist.Coord{Lat: lat1, Lon: lon1},
		geodist.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}

func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineKm(lat1, lon1, lat2, lon2) * 1000
}

// PointDistanceKm is HaversineKm for two points.
func PointDistanceKm(a, b Point) float64 {
	return HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

// WrapLon folds a longitude into (-180, 180].
func WrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon <= 0 {
		lon += 360
	}
	return lon - 180
}

// LonDelta is the signed longitude change from one meridian to another
// along the shorter way round, so a step across the antimeridian stays small.
func LonDelta(from, to float64) float64 {
	return WrapLon(to - from)
}
