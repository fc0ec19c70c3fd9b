// Package export converts tracks into the shapes renderers and other
// consumers read: bare [lat, lon] pairs, rich point records, GeoJSON and
// per-track summaries.
package export

import (
	"github.com/bgraf/trackheat/geotrack"
)

// LatLonPairs flattens points into [lat, lon] pairs.
func LatLonPairs(points []geotrack.Point) [][2]float64 {
	pairs := make([][2]float64, len(points))
	for i, p := range points {
		pairs[i] = p.LatLon()
	}
	return pairs
}

func RichPoints(points []geotrack.Point) []geotrack.RichPoint {
	rich := make([]geotrack.RichPoint, len(points))
	for i, p := range points {
		rich[i] = p.Rich()
	}
	return rich
}
