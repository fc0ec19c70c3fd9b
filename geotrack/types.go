package geotrack

import (
	"encoding/json"
	"math"
	"time"

	"github.com/bgraf/trackheat/option"
)

// Point is a validated coordinate in degrees together with the optional
// metadata recorded for it. RawIndex is the index of the record the point was
// decoded from, used to keep the original order after filtering.
type Point struct {
	Lat, Lon  float64
	Time      option.Option[time.Time]
	Elevation option.Option[float64]
	RawIndex  int
}

// MarshalJSON encodes the point as a `[lat, lon]` pair, the shape map
// renderers consume.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.LatLon())
}

func (p Point) LatLon() [2]float64 {
	return [2]float64{p.Lat, p.Lon}
}

// RichPoint is the verbose JSON form of a Point.
type RichPoint struct {
	Lat         float64  `json:"lat" yaml:"lat"`
	Lon         float64  `json:"lon" yaml:"lon"`
	TimestampMs *int64   `json:"timestampMs,omitempty" yaml:"timestampMs,omitempty"`
	ElevationM  *float64 `json:"elevationM,omitempty" yaml:"elevationM,omitempty"`
}

func (p Point) Rich() RichPoint {
	rp := RichPoint{
		Lat:        p.Lat,
		Lon:        p.Lon,
		ElevationM: p.Elevation.Ptr(),
	}
	if p.Time.IsSome() {
		ms := p.Time.Get().UnixMilli()
		rp.TimestampMs = &ms
	}
	return rp
}

// InRange reports whether lat/lon are finite and inside [-90,90]x[-180,180].
func InRange(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// NearOrigin reports whether the coordinate lies within eps degrees of (0,0)
// on both axes. Such points are almost always unset receiver output.
func NearOrigin(lat, lon, eps float64) bool {
	return math.Abs(lat) < eps && math.Abs(lon) < eps
}
