package config

import (
	"github.com/bgraf/trackheat/assemble"
	"github.com/spf13/viper"
)

var (
	KeyDecoder        = "decoder"
	KeyMaxPoints      = "export.max_points"
	KeyInterpolateDeg = "export.interpolate_deg"
	KeyLocale         = "export.locale"
	KeyListen         = "serve.listen"
)

// Keys of the overridable outlier and classifier heuristics.
var (
	KeySampleSize            = "policy.sample_size"
	KeyOriginEpsilonDeg      = "policy.origin_epsilon_deg"
	KeyMaxMeanAdjacentM      = "policy.max_mean_adjacent_m"
	KeyGlobalIterations      = "policy.global_iterations"
	KeyGlobalFloorKm         = "policy.global_floor_km"
	KeyEdgeJumpKm            = "policy.edge_jump_km"
	KeyFilterLiteralOutliers = "policy.filter_literal_outliers"
)

func Decoder() string {
	return viper.GetString(KeyDecoder)
}

func MaxPoints() int {
	if !viper.IsSet(KeyMaxPoints) {
		return DefaultMaxPoints()
	}
	return viper.GetInt(KeyMaxPoints)
}

func DefaultMaxPoints() int {
	return 50000
}

// InterpolateDeg is the largest gap between heat points, in degrees. Zero
// disables interpolation.
func InterpolateDeg() float64 {
	if !viper.IsSet(KeyInterpolateDeg) {
		return DefaultInterpolateDeg()
	}
	return viper.GetFloat64(KeyInterpolateDeg)
}

func DefaultInterpolateDeg() float64 {
	return 0.0005
}

func Locale() string {
	return viper.GetString(KeyLocale)
}

func Listen() string {
	if !viper.IsSet(KeyListen) {
		return DefaultListen()
	}
	return viper.GetString(KeyListen)
}

func DefaultListen() string {
	return ":8000"
}

// Policy returns the default assembly policy with configured overrides
// applied.
func Policy() assemble.Policy {
	p := assemble.DefaultPolicy()

	if viper.IsSet(KeySampleSize) {
		p.SampleSize = viper.GetInt(KeySampleSize)
	}
	if viper.IsSet(KeyOriginEpsilonDeg) {
		p.OriginEpsilonDeg = viper.GetFloat64(KeyOriginEpsilonDeg)
	}
	if viper.IsSet(KeyMaxMeanAdjacentM) {
		p.MaxMeanAdjacentM = viper.GetFloat64(KeyMaxMeanAdjacentM)
	}
	if viper.IsSet(KeyGlobalIterations) {
		p.GlobalIterations = viper.GetInt(KeyGlobalIterations)
	}
	if viper.IsSet(KeyGlobalFloorKm) {
		p.GlobalFloorKm = viper.GetFloat64(KeyGlobalFloorKm)
	}
	if viper.IsSet(KeyEdgeJumpKm) {
		p.EdgeJumpKm = viper.GetFloat64(KeyEdgeJumpKm)
	}
	if viper.IsSet(KeyFilterLiteralOutliers) {
		p.FilterLiteralOutliers = viper.GetBool(KeyFilterLiteralOutliers)
	}

	return p
}
