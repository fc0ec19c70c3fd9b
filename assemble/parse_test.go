package assemble

import (
	"testing"

	"github.com/bgraf/trackheat/fitfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	fit := encodeFIT([][2]int32{{semis(46), semis(7)}})

	tests := []struct {
		name     string
		filename string
		data     []byte
		want     Format
	}{
		{"fit extension", "ride.FIT", nil, FormatFIT},
		{"gpx extension", "walk.gpx", nil, FormatGPX},
		{"nmea log", "drive.log", nil, FormatNMEA},
		{"sniff fit", "upload.bin", fit, FormatFIT},
		{"sniff gpx", "upload", []byte("  <?xml version=\"1.0\"?><gpx></gpx>"), FormatGPX},
		{"sniff gpx without prolog", "upload", []byte("<gpx version=\"1.1\"></gpx>"), FormatGPX},
		{"sniff nmea", "upload.txt", []byte("$GPRMC,..."), FormatNMEA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.filename, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DetectFormat("notes.txt", []byte("hello"))
	assert.Error(t, err)
}

func TestSupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".fit", ".gpx", ".nmea", ".nmi", ".log"}, SupportedExtensions())
}

func TestParserDispatch(t *testing.T) {
	p := NewParser(nil, DefaultPolicy())
	assert.Equal(t, fitfile.DecoderManual, p.Decoder.Name())

	pairs := make([][2]int32, 10)
	for i := range pairs {
		pairs[i] = [2]int32{semis(48.1 + float64(i)*0.0001), semis(11.5)}
	}
	track, err := p.Parse("ride.fit", encodeFIT(pairs))
	require.NoError(t, err)
	assert.Equal(t, 10, track.Len())
	assert.Equal(t, "ride.fit", track.Filename())

	track, err = p.Parse("route.gpx", []byte(routeGPX))
	require.NoError(t, err)
	assert.Equal(t, 2, track.Len())

	track, err = p.Parse("drive.nmea", []byte(sampleNMEA))
	require.NoError(t, err)
	assert.Equal(t, 3, track.Len())

	_, err = p.Parse("notes.txt", []byte("hello"))
	assert.Error(t, err)
}
