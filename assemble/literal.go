package assemble

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/bgraf/trackheat/geotrack"
	"github.com/bgraf/trackheat/option"
	"github.com/tkrajina/gpxgo/gpx"
)

// literalPoint validates a coordinate from a format that always stores
// degrees. No unit classification applies.
func literalPoint(lat, lon float64, index int, policy Policy) (geotrack.Point, bool) {
	if !geotrack.InRange(lat, lon) || geotrack.NearOrigin(lat, lon, policy.OriginEpsilonDeg) {
		return geotrack.Point{}, false
	}
	return geotrack.Point{Lat: lat, Lon: lon, RawIndex: index}, true
}

// ParseGPX builds a track from GPX track points, or from route points when
// the file has no tracks.
func ParseGPX(data []byte, filename string, policy Policy) (*geotrack.Track, error) {
	gpxData, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: read GPX: %w", filename, err)
	}

	var raw []gpx.GPXPoint
	for _, track := range gpxData.Tracks {
		for _, segment := range track.Segments {
			raw = append(raw, segment.Points...)
		}
	}
	if len(raw) == 0 {
		for _, route := range gpxData.Routes {
			raw = append(raw, route.Points...)
		}
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoGPSData)
	}

	points := make([]geotrack.Point, 0, len(raw))
	for i, p := range raw {
		pt, ok := literalPoint(p.Latitude, p.Longitude, i, policy)
		if !ok {
			continue
		}

		if !p.Timestamp.IsZero() {
			pt.Time = option.Some(p.Timestamp)
		}
		if p.Elevation.NotNull() {
			pt.Elevation = option.Some(p.Elevation.Value())
		}

		points = append(points, pt)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoValidCoordinates)
	}

	return finish(filename, points, policy, policy.FilterLiteralOutliers)
}

type nmeaFix struct {
	lat, lon  float64
	when      option.Option[time.Time]
	timeOfDay nmea.Time
}

// ParseNMEA builds a track from active RMC sentences. Altitude is taken from
// GGA sentences with the same time of day. Logs without RMC fall back to GGA
// positions. Sentences that fail to parse are skipped.
func ParseNMEA(data []byte, filename string, policy Policy) (*geotrack.Track, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		rmcFixes  []nmeaFix
		ggaFixes  []nmeaFix
		altitudes = make(map[nmea.Time]float64)
		skipped   int
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			skipped++
			continue
		}

		switch s := sentence.(type) {
		case nmea.RMC:
			// We're only interested in "ACTIVE" status messages.
			if s.Validity != nmea.ValidRMC {
				continue
			}
			rmcFixes = append(rmcFixes, nmeaFix{
				lat:       s.Latitude,
				lon:       s.Longitude,
				when:      rmcTime(s),
				timeOfDay: s.Time,
			})
		case nmea.GGA:
			if s.FixQuality == nmea.Invalid {
				continue
			}
			altitudes[s.Time] = s.Altitude
			ggaFixes = append(ggaFixes, nmeaFix{lat: s.Latitude, lon: s.Longitude, timeOfDay: s.Time})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: read NMEA: %w", filename, err)
	}

	if skipped > 0 {
		Logf("%s: skipped %d unparsable NMEA lines", filename, skipped)
	}

	fixes := rmcFixes
	if len(fixes) == 0 {
		fixes = ggaFixes
	}
	if len(fixes) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoGPSData)
	}

	points := make([]geotrack.Point, 0, len(fixes))
	for i, f := range fixes {
		pt, ok := literalPoint(f.lat, f.lon, i, policy)
		if !ok {
			continue
		}

		pt.Time = f.when
		if alt, ok := altitudes[f.timeOfDay]; ok && f.timeOfDay.Valid {
			pt.Elevation = option.Some(alt)
		}

		points = append(points, pt)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoValidCoordinates)
	}

	return finish(filename, points, policy, policy.FilterLiteralOutliers)
}

func rmcTime(rmc nmea.RMC) option.Option[time.Time] {
	if !rmc.Date.Valid || !rmc.Time.Valid {
		return option.None[time.Time]()
	}

	// two digit years: 80-99 are the 1900s
	year := 2000 + rmc.Date.YY
	if rmc.Date.YY >= 80 {
		year = 1900 + rmc.Date.YY
	}

	return option.Some(time.Date(
		year, time.Month(rmc.Date.MM), rmc.Date.DD,
		rmc.Time.Hour, rmc.Time.Minute, rmc.Time.Second, rmc.Time.Millisecond*int(time.Millisecond),
		time.UTC,
	))
}
