package assemble

import (
	"math"

	"github.com/bgraf/trackheat/geotrack"
)

// RawCoordinatePair is a decoded coordinate before its unit is known.
type RawCoordinatePair struct {
	Lat, Lon    float64
	SourceIndex int
}

// FormatAnalysis is the per-file verdict of Classify. The distance figures
// and ValidRatio describe the chosen interpretation over the sample.
type FormatAnalysis struct {
	IsFixedPointUnit     bool
	AvgAdjacentDistanceM float64
	MaxAdjacentDistanceM float64
	ValidRatio           float64
}

const semicircleDegrees = 180.0 / (1 << 31)

// SemicirclesToDegrees converts the fixed-point unit to degrees, rounded to
// six decimals (about 10 cm).
func SemicirclesToDegrees(raw float64) float64 {
	return math.Round(raw*semicircleDegrees*1e6) / 1e6
}

// DegreesToSemicircles is the inverse of SemicirclesToDegrees up to rounding.
func DegreesToSemicircles(deg float64) float64 {
	return math.Round(deg / semicircleDegrees)
}

// Classify decides whether the sampled raw values are degrees or semicircles.
// Only the first policy.SampleSize pairs are considered.
func Classify(sample []RawCoordinatePair, policy Policy) FormatAnalysis {
	if len(sample) > policy.SampleSize {
		sample = sample[:policy.SampleSize]
	}

	var fixed, degrees int
	for _, p := range sample {
		lat, lon := math.Abs(p.Lat), math.Abs(p.Lon)
		switch {
		case lat > policy.FixedPointMagnitude || lon > policy.FixedPointMagnitude:
			fixed++
		case lat <= 90 && lon <= 180 && lat >= policy.MinDegreeMagnitude && lon >= policy.MinDegreeMagnitude:
			degrees++
		}
	}

	n := float64(len(sample))
	switch {
	case float64(fixed) > float64(degrees)*policy.FixedRatioOverDeg || float64(fixed) > n*policy.FixedShare:
		return analyze(sample, true)
	case fixed == 0 && float64(degrees) > n*policy.DegreesShare:
		return analyze(sample, false)
	}

	asFixed := analyze(sample, true)
	asDegrees := analyze(sample, false)

	if asDegrees.AvgAdjacentDistanceM < asFixed.AvgAdjacentDistanceM {
		if asDegrees.AvgAdjacentDistanceM < policy.MaxMeanAdjacentM {
			return asDegrees
		}
	} else if asFixed.AvgAdjacentDistanceM < policy.MaxMeanAdjacentM {
		return asFixed
	}

	// the container stores semicircles unless proven otherwise
	return asFixed
}

// analyze measures adjacent distances of the sample under one
// interpretation. Pairs that fall out of range are skipped; with fewer than
// two valid pairs the mean is +Inf.
func analyze(sample []RawCoordinatePair, fixed bool) FormatAnalysis {
	a := FormatAnalysis{
		IsFixedPointUnit:     fixed,
		AvgAdjacentDistanceM: math.Inf(1),
	}

	var (
		valid, steps int
		sum          float64
		prevLat      float64
		prevLon      float64
	)

	for _, p := range sample {
		lat, lon, ok := interpret(p, fixed)
		if !ok {
			continue
		}

		if valid > 0 {
			d := geotrack.HaversineM(prevLat, prevLon, lat, lon)
			sum += d
			steps++
			a.MaxAdjacentDistanceM = math.Max(a.MaxAdjacentDistanceM, d)
		}
		prevLat, prevLon = lat, lon
		valid++
	}

	if steps > 0 {
		a.AvgAdjacentDistanceM = sum / float64(steps)
	}
	if len(sample) > 0 {
		a.ValidRatio = float64(valid) / float64(len(sample))
	}

	return a
}

// interpret reads p strictly under one unit.
func interpret(p RawCoordinatePair, fixed bool) (lat, lon float64, ok bool) {
	lat, lon = p.Lat, p.Lon
	if fixed {
		lat, lon = SemicirclesToDegrees(lat), SemicirclesToDegrees(lon)
	}
	return lat, lon, geotrack.InRange(lat, lon)
}

// convertPair applies the file-wide unit and falls back to semicircles for a
// single pair whose degree reading is out of range.
func convertPair(p RawCoordinatePair, fixed bool) (lat, lon float64, ok bool) {
	lat, lon, ok = interpret(p, fixed)
	if !ok && !fixed {
		lat, lon, ok = interpret(p, true)
	}
	return
}
