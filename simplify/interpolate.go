package simplify

import (
	"fmt"
	"math"
	"time"

	"github.com/bgraf/trackheat/geotrack"
	"github.com/bgraf/trackheat/option"
)

// MinInterpolateDeg is the smallest accepted interpolation distance, about
// one metre. Smaller values would fill ordinary gaps with millions of points.
const MinInterpolateDeg = initialToleranceDeg

// CheckInterpolateDeg validates a user supplied interpolation distance. Zero
// disables interpolation and is accepted.
func CheckInterpolateDeg(d float64) error {
	if d == 0 {
		return nil
	}
	if math.IsNaN(d) || d < MinInterpolateDeg {
		return fmt.Errorf("interpolation distance %g is below the minimum of %g degrees", d, MinInterpolateDeg)
	}
	return nil
}

// InterpolateTrackPoints fills every gap longer than maxDistanceDeg with
// evenly spaced points. Gaps are euclidean in degrees, with longitude taken
// the short way round. A gap of length d gets ceil(d/max) interpolants, so
// each resulting step is shorter than max. Tracks are handled one by one;
// nothing is ever inserted between two tracks.
//
// Interpolated points carry no time or elevation and have RawIndex -1.
func InterpolateTrackPoints(tracks [][]geotrack.Point, maxDistanceDeg float64) [][]geotrack.Point {
	out := make([][]geotrack.Point, len(tracks))
	for i, track := range tracks {
		out[i] = interpolate(track, maxDistanceDeg)
	}
	return out
}

func interpolate(points []geotrack.Point, maxDistanceDeg float64) []geotrack.Point {
	if maxDistanceDeg <= 0 || len(points) < 2 {
		return append([]geotrack.Point(nil), points...)
	}

	out := make([]geotrack.Point, 0, len(points))
	out = append(out, points[0])

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		dLat, dLon := cur.Lat-prev.Lat, geotrack.LonDelta(prev.Lon, cur.Lon)
		d := math.Hypot(dLat, dLon)
		if d > maxDistanceDeg {
			n := int(math.Ceil(d / maxDistanceDeg))
			for k := 1; k <= n; k++ {
				f := float64(k) / float64(n+1)
				out = append(out, geotrack.Point{
					Lat:       prev.Lat + dLat*f,
					Lon:       geotrack.WrapLon(prev.Lon + dLon*f),
					Time:      option.None[time.Time](),
					Elevation: option.None[float64](),
					RawIndex:  -1,
				})
			}
		}

		out = append(out, cur)
	}

	return out
}

// Flatten concatenates per-track point slices in order.
func Flatten(tracks [][]geotrack.Point) []geotrack.Point {
	var n int
	for _, t := range tracks {
		n += len(t)
	}

	out := make([]geotrack.Point, 0, n)
	for _, t := range tracks {
		out = append(out, t...)
	}
	return out
}

// PrepareHeatPoints samples every track down to its share of globalMax and
// then interpolates. The budget applies before interpolation, so filled-in
// points do not count against it. A non-positive maxDistanceDeg skips
// interpolation.
func PrepareHeatPoints(tracks []*geotrack.Track, globalMax int, maxDistanceDeg float64) [][]geotrack.Point {
	budget := PerTrackBudget(globalMax, len(tracks))

	sampled := make([][]geotrack.Point, 0, len(tracks))
	for _, t := range tracks {
		sampled = append(sampled, SamplePoints(t.Points(), budget))
	}

	return InterpolateTrackPoints(sampled, maxDistanceDeg)
}
