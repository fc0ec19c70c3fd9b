package assemble

import (
	"errors"
	"fmt"
	"math"

	"github.com/bgraf/trackheat/fitfile"
	"github.com/bgraf/trackheat/geotrack"
)

var (
	ErrNoGPSData          = errors.New("no GPS data")
	ErrNoValidCoordinates = errors.New("no valid coordinates")
	ErrNoSurvivingPoints  = errors.New("no points survived outlier filtering")
)

// BuildTrack turns decoded records into a cleaned track. Records are
// classified on a leading sample, converted to degrees, validated and run
// through the outlier filter; the surviving points keep their record order.
func BuildTrack(records []fitfile.GPSRecord, filename string, policy Policy) (*geotrack.Track, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoGPSData)
	}

	pairs := rawPairs(records, policy)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoValidCoordinates)
	}

	sample := pairs[:min(len(pairs), policy.SampleSize)]
	analysis := Classify(sample, policy)

	points := make([]geotrack.Point, 0, len(pairs))
	for _, p := range pairs {
		lat, lon, ok := convertPair(p, analysis.IsFixedPointUnit)
		if !ok || geotrack.NearOrigin(lat, lon, policy.OriginEpsilonDeg) {
			continue
		}

		rec := records[p.SourceIndex]
		points = append(points, geotrack.Point{
			Lat:       lat,
			Lon:       lon,
			Time:      rec.Timestamp,
			Elevation: rec.Elevation,
			RawIndex:  p.SourceIndex,
		})
	}

	Logf("%s: %d records, %d candidate pairs, %d valid points (fixed-point=%t, mean step %.1f m)",
		filename, len(records), len(pairs), len(points), analysis.IsFixedPointUnit, analysis.AvgAdjacentDistanceM)

	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoValidCoordinates)
	}

	return finish(filename, points, policy, true)
}

// rawPairs drops the pairs that are noise whatever their unit: exact (0,0)
// and a fixed-point scale latitude paired with a near zero longitude.
func rawPairs(records []fitfile.GPSRecord, policy Policy) []RawCoordinatePair {
	pairs := make([]RawCoordinatePair, 0, len(records))
	for i, r := range records {
		lat, lon := float64(r.RawLat), float64(r.RawLon)
		if lat == 0 && lon == 0 {
			continue
		}
		if math.Abs(lon) < 1 && math.Abs(lat) > policy.FixedPointMagnitude {
			continue
		}
		pairs = append(pairs, RawCoordinatePair{Lat: lat, Lon: lon, SourceIndex: i})
	}
	return pairs
}

func finish(filename string, points []geotrack.Point, policy Policy, filter bool) (*geotrack.Track, error) {
	if filter {
		var report OutlierReport
		points, report = FilterOutliers(points, policy)
		if report.Total() > 0 {
			Logf("%s: outlier filter removed %d points (global %d, edge %d)",
				filename, report.Total(), report.Global, report.Edge)
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoSurvivingPoints)
	}

	return geotrack.NewTrack(filename, points), nil
}

// ParseFIT decodes a binary container with the given decoder and builds its
// track.
func ParseFIT(data []byte, filename string, decoder fitfile.Decoder, policy Policy) (*geotrack.Track, error) {
	if decoder == nil {
		decoder = fitfile.ManualDecoder{}
	}

	records, err := decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return BuildTrack(records, filename, policy)
}
