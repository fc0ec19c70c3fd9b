package serve

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bgraf/trackheat/assemble"
	"github.com/bgraf/trackheat/fitfile"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routeGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <rte>
    <rtept lat="52.52" lon="13.405"><time>2023-05-01T10:00:00Z</time></rtept>
    <rtept lat="52.53" lon="13.405"><time>2023-05-01T10:05:00Z</time></rtept>
  </rte>
</gpx>`

// fitBytes encodes a short semicircle track heading north from 46N 7E.
func fitBytes(n int) []byte {
	var body bytes.Buffer
	body.Write([]byte{0x40, 0, fitfile.ArchLittleEndian, 20, 0, 2})
	body.Write([]byte{fitfile.FieldLatitude, 4, fitfile.BaseTypeSint32})
	body.Write([]byte{fitfile.FieldLongitude, 4, fitfile.BaseTypeSint32})
	for i := 0; i < n; i++ {
		body.WriteByte(0)
		_ = binary.Write(&body, binary.LittleEndian, int32(assemble.DegreesToSemicircles(46+float64(i)*0.001)))
		_ = binary.Write(&body, binary.LittleEndian, int32(assemble.DegreesToSemicircles(7)))
	}

	var out bytes.Buffer
	out.Write([]byte{12, 0x20, 0, 0})
	_ = binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.WriteString(fitfile.Signature)
	out.Write(body.Bytes())
	out.Write([]byte{0, 0})
	return out.Bytes()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	assemble.SetLogger(nil)

	r := gin.New()
	newServeAPI(Options{MaxPoints: 1000, InterpolateDeg: 0.01}).routes(r)
	return r
}

func upload(t *testing.T, r http.Handler, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/tracks", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestUploadAndQuery(t *testing.T) {
	r := newTestRouter()

	broken := fitBytes(3)
	broken[0] = 13

	w := upload(t, r, map[string][]byte{
		"ride.fit":   fitBytes(20),
		"walk.gpx":   []byte(routeGPX),
		"broken.fit": broken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Totals.Files)
	assert.Equal(t, 1, resp.Totals.Failed)
	assert.Equal(t, 22, resp.Totals.Points)
	require.NotNil(t, resp.Totals.Dates)

	ids := map[string]string{}
	for _, e := range resp.Results {
		if e.Filename == "broken.fit" {
			assert.Contains(t, e.Error, "invalid FIT header")
			assert.Empty(t, e.ID)
			continue
		}
		require.NotEmpty(t, e.ID, e.Filename)
		ids[e.Filename] = e.ID
	}

	w = get(r, "/tracks")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = get(r, "/tracks/"+ids["walk.gpx"])
	require.Equal(t, http.StatusOK, w.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "walk.gpx", entry["filename"])
	assert.Equal(t, float64(2), entry["pointCount"])
	assert.Equal(t, "1 May 2023", entry["period"])

	w = get(r, "/tracks/"+ids["walk.gpx"]+"/points")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[[52.52,13.405],[52.53,13.405]]`, w.Body.String())

	w = get(r, "/tracks/"+ids["walk.gpx"]+"/points?format=rich")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"timestampMs":1682935200000`)

	w = get(r, "/tracks/"+ids["walk.gpx"]+"/points?format=xml")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/geojson")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"FeatureCollection"`)
	assert.Contains(t, w.Body.String(), `"stroke"`)
}

func TestHeat(t *testing.T) {
	r := newTestRouter()
	require.Equal(t, http.StatusOK, upload(t, r, map[string][]byte{"walk.gpx": []byte(routeGPX)}).Code)

	// 0.01 degree gap with a 0.001 maximum: 10 interpolated points
	w := get(r, "/heat?interpolate=0.001")
	require.Equal(t, http.StatusOK, w.Code)
	var pairs [][2]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pairs))
	assert.Len(t, pairs, 12)

	w = get(r, "/heat?interpolate=0")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pairs))
	assert.Len(t, pairs, 2)

	assert.Equal(t, http.StatusBadRequest, get(r, "/heat?maxPoints=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/heat?interpolate=-1").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/heat?interpolate=1e-9").Code)
}

func TestNotFoundAndDelete(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusNotFound, get(r, "/tracks/not-a-uuid").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/tracks/8a3e0f5c-4f7e-4c44-9d7a-2f0d2a1b6c11").Code)

	w := upload(t, r, map[string][]byte{"ride.fit": fitBytes(5)})
	var resp uploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	id := resp.Results[0].ID

	del := httptest.NewRecorder()
	r.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, "/tracks/"+id, nil))
	assert.Equal(t, http.StatusNoContent, del.Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/tracks/"+id).Code)

	w = get(r, "/tracks")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUploadWithoutFiles(t *testing.T) {
	r := newTestRouter()
	w := upload(t, r, map[string][]byte{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
