package geotrack

import (
	"time"

	"github.com/bgraf/trackheat/option"
)

type DateRange struct {
	Min time.Time `json:"min" yaml:"min"`
	Max time.Time `json:"max" yaml:"max"`
}

// Extend returns the smallest range covering r and t.
func (r DateRange) Extend(t time.Time) DateRange {
	if t.Before(r.Min) {
		r.Min = t
	}
	if t.After(r.Max) {
		r.Max = t
	}
	return r
}

// MergeDateRanges combines two optional ranges.
func MergeDateRanges(a, b option.Option[DateRange]) option.Option[DateRange] {
	if a.IsNone() {
		return b
	}
	if b.IsNone() {
		return a
	}
	r := a.Get().Extend(b.Get().Min).Extend(b.Get().Max)
	return option.Some(r)
}

// Track is the cleaned result of parsing one recording. It is immutable once
// built: accessors hand out copies.
type Track struct {
	filename   string
	points     []Point
	distanceKm float64
	dates      option.Option[DateRange]
}

// NewTrack builds a track from points that already passed validation and
// filtering. The slice is copied; distance and date range are derived from
// the points in the given order.
func NewTrack(filename string, points []Point) *Track {
	t := &Track{
		filename: filename,
		points:   append([]Point(nil), points...),
	}

	for i, p := range t.points {
		if i > 0 {
			t.distanceKm += PointDistanceKm(t.points[i-1], p)
		}

		if p.Time.IsNone() {
			continue
		}
		ts := p.Time.Get()
		if t.dates.IsNone() {
			t.dates = option.Some(DateRange{Min: ts, Max: ts})
		} else {
			t.dates = option.Some(t.dates.Get().Extend(ts))
		}
	}

	return t
}

func (t *Track) Filename() string {
	return t.filename
}

func (t *Track) Len() int {
	return len(t.points)
}

// Points returns a copy of the track's points.
func (t *Track) Points() []Point {
	return append([]Point(nil), t.points...)
}

// Point returns the i-th point.
func (t *Track) Point(i int) Point {
	return t.points[i]
}

func (t *Track) DistanceKm() float64 {
	return t.distanceKm
}

func (t *Track) DateRange() option.Option[DateRange] {
	return t.dates
}

// Summary is the per-track overview handed to consumers.
type Summary struct {
	Filename   string     `json:"filename" yaml:"filename"`
	PointCount int        `json:"pointCount" yaml:"pointCount"`
	DistanceKm float64    `json:"distanceKm" yaml:"distanceKm"`
	Dates      *DateRange `json:"dates,omitempty" yaml:"dates,omitempty"`
}

func (t *Track) Summary() Summary {
	return Summary{
		Filename:   t.filename,
		PointCount: len(t.points),
		DistanceKm: t.distanceKm,
		Dates:      t.dates.Ptr(),
	}
}
