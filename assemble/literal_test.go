package assemble

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Morning</name>
    <trkseg>
      <trkpt lat="46.0" lon="7.0"><ele>1000</ele><time>2023-06-01T08:00:00Z</time></trkpt>
      <trkpt lat="95.0" lon="7.0"><time>2023-06-01T08:00:01Z</time></trkpt>
      <trkpt lat="0.0001" lon="0.0002"></trkpt>
      <trkpt lat="46.001" lon="7.001"><time>2023-06-01T08:00:02Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="46.002" lon="7.002"><ele>1010</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

const routeGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <rte>
    <rtept lat="52.52" lon="13.405"></rtept>
    <rtept lat="52.53" lon="13.41"></rtept>
  </rte>
</gpx>`

const emptyGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1"></gpx>`

func TestParseGPX(t *testing.T) {
	track, err := ParseGPX([]byte(sampleGPX), "morning.gpx", DefaultPolicy())
	require.NoError(t, err)
	require.Equal(t, 3, track.Len())

	first := track.Point(0)
	assert.Equal(t, 46.0, first.Lat)
	assert.Equal(t, 1000.0, first.Elevation.Get())
	assert.Equal(t, time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC), first.Time.Get().UTC())

	assert.Equal(t, []int{0, 3, 4}, rawIndices(track.Points()))
	assert.True(t, track.Point(1).Elevation.IsNone())
	assert.True(t, track.Point(2).Time.IsNone())

	dates := track.DateRange().Get()
	assert.Equal(t, 2*time.Second, dates.Max.Sub(dates.Min))
}

func TestParseGPXRoutes(t *testing.T) {
	track, err := ParseGPX([]byte(routeGPX), "route.gpx", DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 2, track.Len())
}

func TestParseGPXErrors(t *testing.T) {
	_, err := ParseGPX([]byte(emptyGPX), "empty.gpx", DefaultPolicy())
	assert.ErrorIs(t, err, ErrNoGPSData)

	_, err = ParseGPX([]byte("<gpx><trk"), "broken.gpx", DefaultPolicy())
	assert.Error(t, err)

	invalid := strings.Replace(routeGPX, `lat="52.52" lon="13.405"`, `lat="-91" lon="13.405"`, 1)
	invalid = strings.Replace(invalid, `lat="52.53" lon="13.41"`, `lat="0" lon="0"`, 1)
	_, err = ParseGPX([]byte(invalid), "invalid.gpx", DefaultPolicy())
	assert.ErrorIs(t, err, ErrNoValidCoordinates)
}

const sampleNMEA = `$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47
$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A
this line is garbage
$GPGGA,123520,4807.138,N,01131.100,E,1,08,0.9,546.0,M,46.9,M,,*4A
$GPRMC,123520,A,4807.138,N,01131.100,E,022.4,084.4,230394,003.1,W*60
$GPRMC,123521,V,4807.238,N,01131.200,E,022.4,084.4,230394,003.1,W*76
$GPRMC,123522,A,4807.338,N,01131.300,E,022.4,084.4,230394,003.1,W*62
`

const ggaOnlyNMEA = `$GPGGA,123600,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*4C
$GPGGA,123601,4807.100,N,01131.050,E,1,08,0.9,547.0,M,46.9,M,,*44
$GPGGA,123602,0000.000,N,00000.000,E,0,00,0.0,0.0,M,0.0,M,,*77
`

func TestParseNMEA(t *testing.T) {
	track, err := ParseNMEA([]byte(sampleNMEA), "drive.nmea", DefaultPolicy())
	require.NoError(t, err)
	require.Equal(t, 3, track.Len())

	first := track.Point(0)
	assert.InDelta(t, 48.1173, first.Lat, 1e-4)
	assert.InDelta(t, 11.5167, first.Lon, 1e-4)
	assert.Equal(t, time.Date(1994, 3, 23, 12, 35, 19, 0, time.UTC), first.Time.Get())
	assert.Equal(t, 545.4, first.Elevation.Get())

	assert.Equal(t, 546.0, track.Point(1).Elevation.Get())
	assert.True(t, track.Point(2).Elevation.IsNone())
}

func TestParseNMEAFallsBackToGGA(t *testing.T) {
	track, err := ParseNMEA([]byte(ggaOnlyNMEA), "gga.nmea", DefaultPolicy())
	require.NoError(t, err)
	require.Equal(t, 2, track.Len())
	assert.True(t, track.Point(0).Time.IsNone())
	assert.Equal(t, 547.0, track.Point(1).Elevation.Get())
}

func TestParseNMEANoData(t *testing.T) {
	_, err := ParseNMEA([]byte("hello\nworld\n"), "none.nmea", DefaultPolicy())
	assert.ErrorIs(t, err, ErrNoGPSData)
}
