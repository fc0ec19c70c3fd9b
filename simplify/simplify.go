// Package simplify bounds the number of points handed to the renderer and
// fills gaps that would otherwise show as long straight edges.
package simplify

import (
	"math"

	"github.com/bgraf/trackheat/geotrack"
)

const (
	initialToleranceDeg = 1e-5
	maxToleranceDoubles = 10

	// MinTrackBudget is the smallest per-track budget PerTrackBudget hands out.
	MinTrackBudget = 1000

	// distances below this are floating-point noise
	noiseEpsilon = 1e-12
)

// SimplifyTrack reduces points with Douglas-Peucker in degree space. A segment
// whose points all lie within toleranceDeg of its chord collapses to its two
// endpoints. Metadata of the kept points is retained.
func SimplifyTrack(points []geotrack.Point, toleranceDeg float64) []geotrack.Point {
	if len(points) < 3 {
		return append([]geotrack.Point(nil), points...)
	}

	keep := make([]bool, len(points))
	keep[0], keep[len(points)-1] = true, true
	douglasPeucker(points, 0, len(points)-1, toleranceDeg, keep)

	out := make([]geotrack.Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

func douglasPeucker(points []geotrack.Point, first, last int, tolerance float64, keep []bool) {
	if last-first < 2 {
		return
	}

	maxDist, index := 0.0, -1
	for i := first + 1; i < last; i++ {
		d := perpendicularDistance(points[i], points[first], points[last])
		if d > maxDist {
			maxDist, index = d, i
		}
	}

	if index < 0 || maxDist <= tolerance+noiseEpsilon {
		return
	}

	// the junction point is marked once and shared by both halves
	keep[index] = true
	douglasPeucker(points, first, index, tolerance, keep)
	douglasPeucker(points, index, last, tolerance, keep)
}

// perpendicularDistance is the distance from p to the line through a and b,
// with lon as x and lat as y, both relative to a. A degenerate chord measures
// to a.
func perpendicularDistance(p, a, b geotrack.Point) float64 {
	bx, by := geotrack.LonDelta(a.Lon, b.Lon), b.Lat-a.Lat
	px, py := geotrack.LonDelta(a.Lon, p.Lon), p.Lat-a.Lat

	length := math.Hypot(bx, by)
	if length == 0 {
		return math.Hypot(px, py)
	}
	return math.Abs(by*px-bx*py) / length
}

// SamplePoints returns at most maxPoints points. Douglas-Peucker is tried
// with a tolerance starting at about one metre and doubling on every attempt;
// when that does not get small enough the points are subsampled with a
// uniform stride. A non-positive maxPoints returns the points unchanged.
func SamplePoints(points []geotrack.Point, maxPoints int) []geotrack.Point {
	if maxPoints <= 0 || len(points) <= maxPoints {
		return append([]geotrack.Point(nil), points...)
	}

	tolerance := initialToleranceDeg
	for attempt := 0; attempt < maxToleranceDoubles; attempt++ {
		simplified := SimplifyTrack(points, tolerance)
		if len(simplified) <= maxPoints {
			return simplified
		}
		tolerance *= 2
	}

	return stride(points, maxPoints)
}

func stride(points []geotrack.Point, maxPoints int) []geotrack.Point {
	step := float64(len(points)) / float64(maxPoints)
	out := make([]geotrack.Point, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		out = append(out, points[int(float64(i)*step)])
	}
	return out
}

// PerTrackBudget splits a global point budget evenly over trackCount tracks,
// never going below MinTrackBudget.
func PerTrackBudget(globalMax, trackCount int) int {
	if trackCount <= 0 {
		return max(MinTrackBudget, globalMax)
	}
	return max(MinTrackBudget, globalMax/trackCount)
}
