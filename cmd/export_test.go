package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bgraf/trackheat/geotrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExport(t *testing.T) {
	tracks := []*geotrack.Track{
		geotrack.NewTrack("a.gpx", []geotrack.Point{{Lat: 46, Lon: 7}, {Lat: 46, Lon: 7.5}}),
		geotrack.NewTrack("b.gpx", []geotrack.Point{{Lat: 47, Lon: 8}}),
	}

	var buf bytes.Buffer
	require.NoError(t, writeExport(&buf, "latlon", tracks, 1000, 0.1))
	var pairs [][2]float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &pairs))
	// 0.5 degree gap: 5 interpolated points, none towards b.gpx
	assert.Len(t, pairs, 2+5+1)
	assert.Equal(t, [2]float64{47, 8}, pairs[len(pairs)-1])

	buf.Reset()
	require.NoError(t, writeExport(&buf, "rich", tracks, 1000, 0))
	assert.JSONEq(t, `[{"lat":46,"lon":7},{"lat":46,"lon":7.5},{"lat":47,"lon":8}]`, buf.String())

	buf.Reset()
	require.NoError(t, writeExport(&buf, "geojson", tracks, 1000, 0))
	assert.Contains(t, buf.String(), `"a.gpx"`)

	assert.Error(t, writeExport(&buf, "svg", tracks, 1000, 0))
}
