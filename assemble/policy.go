package assemble

// Policy holds the heuristic constants of the cleaning pipeline. The defaults
// are tuned for consumer GPS recordings; tests and callers may override any
// of them.
type Policy struct {
	// Coordinate classification
	SampleSize          int     // leading pairs inspected by Classify
	FixedPointMagnitude float64 // |value| above this looks like a fixed-point unit
	MinDegreeMagnitude  float64 // |value| below this is not counted as plausible degrees
	FixedRatioOverDeg   float64 // fixed count must exceed degrees count times this
	FixedShare          float64 // or exceed this share of the sample
	DegreesShare        float64 // degrees share needed when no fixed-point values are seen
	MaxMeanAdjacentM    float64 // mean adjacent distance accepted by the distance test

	// Point validation
	OriginEpsilonDeg float64

	// Global outlier pass
	GlobalIterations      int
	GlobalFirstMultiplier float64
	GlobalFirstMinKm      float64
	GlobalMultiplier      float64
	GlobalMinKm           float64
	GlobalFloorKm         float64

	// Edge outlier pass
	EdgeMinPoints int
	EdgeFraction  float64
	EdgeJumpKm    float64

	// FilterLiteralOutliers runs the outlier filter on formats that always
	// store degrees (GPX, NMEA) too.
	FilterLiteralOutliers bool
}

func DefaultPolicy() Policy {
	return Policy{
		SampleSize:          50,
		FixedPointMagnitude: 1000,
		MinDegreeMagnitude:  0.1,
		FixedRatioOverDeg:   1.5,
		FixedShare:          0.3,
		DegreesShare:        0.8,
		MaxMeanAdjacentM:    1000,

		OriginEpsilonDeg: 0.001,

		GlobalIterations:      3,
		GlobalFirstMultiplier: 2.5,
		GlobalFirstMinKm:      1000,
		GlobalMultiplier:      3,
		GlobalMinKm:           500,
		GlobalFloorKm:         500,

		EdgeMinPoints: 3,
		EdgeFraction:  0.01,
		EdgeJumpKm:    1000,
	}
}
