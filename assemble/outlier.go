package assemble

import (
	"math"

	"github.com/bgraf/trackheat/geotrack"
	"gonum.org/v1/gonum/stat"
)

// OutlierReport counts the points rejected by each pass.
type OutlierReport struct {
	Global     int
	Edge       int
	Iterations int
}

func (r OutlierReport) Total() int {
	return r.Global + r.Edge
}

// FilterOutliers removes misdecoded points that are implausible relative to
// the rest of the track. Points are never reordered: the passes only clear
// entries of a validity mask over the input, and the survivors are compacted
// in their original order at the end.
func FilterOutliers(points []geotrack.Point, policy Policy) ([]geotrack.Point, OutlierReport) {
	valid := make([]bool, len(points))
	for i := range valid {
		valid[i] = true
	}

	var report OutlierReport
	report.Global, report.Iterations = globalPass(points, valid, policy)
	report.Edge = edgePass(points, valid, policy)

	kept := make([]geotrack.Point, 0, len(points)-report.Total())
	for i, ok := range valid {
		if ok {
			kept = append(kept, points[i])
		}
	}

	return kept, report
}

func validIndices(valid []bool) []int {
	idx := make([]int, 0, len(valid))
	for i, ok := range valid {
		if ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// globalPass rejects points far from the centroid of the remaining points.
// The first iteration is the most tolerant; later ones tighten the
// multiplier floor but the threshold never drops below GlobalFloorKm.
func globalPass(points []geotrack.Point, valid []bool, policy Policy) (removed, iterations int) {
	for iter := 0; iter < policy.GlobalIterations; iter++ {
		idx := validIndices(valid)
		if len(idx) == 0 {
			break
		}
		iterations++

		// longitudes are averaged relative to the first point so a track
		// crossing the antimeridian does not average out near 0
		ref := points[idx[0]].Lon
		var cLat, dLon float64
		for _, i := range idx {
			cLat += points[i].Lat
			dLon += geotrack.LonDelta(ref, points[i].Lon)
		}
		cLat /= float64(len(idx))
		cLon := geotrack.WrapLon(ref + dLon/float64(len(idx)))

		dists := make([]float64, len(idx))
		for k, i := range idx {
			dists[k] = geotrack.HaversineKm(cLat, cLon, points[i].Lat, points[i].Lon)
		}
		mean, std := stat.PopMeanStdDev(dists, nil)

		multiplier, minKm := policy.GlobalMultiplier, policy.GlobalMinKm
		if iter == 0 {
			multiplier, minKm = policy.GlobalFirstMultiplier, policy.GlobalFirstMinKm
		}
		threshold := math.Max(std*multiplier, minKm)
		threshold = math.Max(threshold, policy.GlobalFloorKm)

		n := 0
		for k, i := range idx {
			if dists[k] > threshold {
				valid[i] = false
				n++
			}
		}

		if n > 0 {
			Logf("outlier pass %d: removed %d points beyond %.0f km of centroid (%.5f, %.5f), mean %.1f km",
				iter, n, threshold, cLat, cLon, mean)
		}
		removed += n

		if n == 0 {
			break
		}
	}

	return removed, iterations
}

// edgePass looks for jumps between adjacent points near the start and end
// of the track only. For a jump it keeps the side that agrees with the next
// point further in, so interior continuity is never touched.
func edgePass(points []geotrack.Point, valid []bool, policy Policy) int {
	live := validIndices(valid)
	if len(live) < 3 {
		return 0
	}

	window := max(policy.EdgeMinPoints, int(float64(len(live))*policy.EdgeFraction))
	dist := func(a, b int) float64 {
		return geotrack.PointDistanceKm(points[a], points[b])
	}

	removed := 0
	drop := func(pos int) {
		valid[live[pos]] = false
		live = append(live[:pos], live[pos+1:]...)
		removed++
	}

	// head: pair (k, k+1), further neighbour k+2
	for k, budget := 0, window; k < window && k+2 < len(live) && budget > 0; {
		a, b, c := live[k], live[k+1], live[k+2]
		if dist(a, b) <= policy.EdgeJumpKm {
			k++
			continue
		}

		if dist(a, c) < dist(b, c) {
			drop(k + 1)
		} else {
			drop(k)
		}
		budget--
	}

	// tail: pair (n-1-j, n-2-j), further neighbour n-3-j
	for j, budget := 0, window; j < window && len(live)-3-j >= 0 && budget > 0; {
		n := len(live)
		a, b, c := live[n-1-j], live[n-2-j], live[n-3-j]
		if dist(a, b) <= policy.EdgeJumpKm {
			j++
			continue
		}

		if dist(a, c) < dist(b, c) {
			drop(n - 2 - j)
		} else {
			drop(n - 1 - j)
		}
		budget--
	}

	if removed > 0 {
		Logf("edge pass: removed %d points within %d of the track ends", removed, window)
	}

	return removed
}
