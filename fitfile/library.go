package fitfile

import (
	"bytes"
	"fmt"
	"math"

	"github.com/bgraf/trackheat/option"
	"github.com/tormoder/fit"
)

// LibraryDecoder decodes activity files with github.com/tormoder/fit. Unlike
// ManualDecoder it validates the whole file, including the checksum, and
// fails on any corruption.
type LibraryDecoder struct{}

func (LibraryDecoder) Name() string {
	return DecoderLibrary
}

func (LibraryDecoder) Decode(data []byte) ([]GPSRecord, error) {
	if _, err := ParseHeader(data); err != nil {
		return nil, err
	}

	file, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode fit: %w", err)
	}

	activity, err := file.Activity()
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}

	records := make([]GPSRecord, 0, len(activity.Records))
	for _, r := range activity.Records {
		if r.PositionLat.Invalid() || r.PositionLong.Invalid() {
			continue
		}

		rec := GPSRecord{
			RawLat:    int64(r.PositionLat.Semicircles()),
			RawLon:    int64(r.PositionLong.Semicircles()),
			Timestamp: NormalizeTimestamp(r.Timestamp),
		}

		if alt := r.GetEnhancedAltitudeScaled(); !math.IsNaN(alt) {
			rec.Elevation = option.Some(alt)
		} else if alt := r.GetAltitudeScaled(); !math.IsNaN(alt) {
			rec.Elevation = option.Some(alt)
		}

		records = append(records, rec)
	}

	return records, nil
}
