package serve

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/bgraf/trackheat/assemble"
	"github.com/bgraf/trackheat/export"
	"github.com/bgraf/trackheat/geotrack"
	"github.com/bgraf/trackheat/simplify"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type uploadEntry struct {
	ID       string          `json:"id,omitempty"`
	Filename string          `json:"filename"`
	Summary  *export.Summary `json:"summary,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type totalsView struct {
	Files      int                 `json:"files"`
	Failed     int                 `json:"failed"`
	Points     int                 `json:"points"`
	DistanceKm float64             `json:"distanceKm"`
	Dates      *geotrack.DateRange `json:"dates,omitempty"`
}

func newTotalsView(t assemble.Totals) totalsView {
	return totalsView{
		Files:      t.Files,
		Failed:     t.Failed,
		Points:     t.Points,
		DistanceKm: t.DistanceKm,
		Dates:      t.Dates.Ptr(),
	}
}

type uploadResponse struct {
	Results []uploadEntry `json:"results"`
	Totals  totalsView    `json:"totals"`
}

type trackEntry struct {
	ID string `json:"id"`
	export.Summary
	Color string `json:"color"`
}

func fileSource(fh *multipart.FileHeader) assemble.Source {
	return assemble.Source{
		Name: fh.Filename,
		Load: func() ([]byte, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			defer func() { _ = f.Close() }()

			return io.ReadAll(f)
		},
	}
}

func (api *serveAPI) ServeUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("multipart form: %s", err)})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no 'file' fields"})
		return
	}

	sources := make([]assemble.Source, len(files))
	for i, fh := range files {
		sources[i] = fileSource(fh)
	}

	resp, err := api.ingest(c.Request.Context(), sources)
	if err != nil {
		_ = c.Error(err)
	}

	c.JSON(http.StatusOK, resp)
}

func (api *serveAPI) ServeTracks(c *gin.Context) {
	api.mu.Lock()
	defer api.mu.Unlock()

	entries := []trackEntry{}
	for _, guid := range api.store.IDs() {
		t, _ := api.store.ByID(guid)
		entries = append(entries, api.trackEntry(guid, t))
	}

	c.JSON(http.StatusOK, entries)
}

func (api *serveAPI) trackEntry(guid uuid.UUID, t *geotrack.Track) trackEntry {
	return trackEntry{
		ID:      guid.String(),
		Summary: api.summary(t),
		Color:   api.colors.HexColor(t.Filename()),
	}
}

// trackByParam resolves the GUID route parameter. It writes the 404 itself
// and reports false when there is no such track.
func (api *serveAPI) trackByParam(c *gin.Context) (uuid.UUID, *geotrack.Track, bool) {
	guid, err := uuid.Parse(c.Param("GUID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.Nil, nil, false
	}

	t, ok := api.store.ByID(guid)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.Nil, nil, false
	}

	return guid, t, true
}

func (api *serveAPI) ServeTrack(c *gin.Context) {
	api.mu.Lock()
	defer api.mu.Unlock()

	guid, t, ok := api.trackByParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, api.trackEntry(guid, t))
}

func (api *serveAPI) ServeDelete(c *gin.Context) {
	api.mu.Lock()
	defer api.mu.Unlock()

	guid, _, ok := api.trackByParam(c)
	if !ok {
		return
	}

	api.store.Remove(guid)
	c.Status(http.StatusNoContent)
}

func (api *serveAPI) ServePoints(c *gin.Context) {
	api.mu.Lock()
	defer api.mu.Unlock()

	_, t, ok := api.trackByParam(c)
	if !ok {
		return
	}

	switch format := c.DefaultQuery("format", "latlon"); format {
	case "latlon":
		c.JSON(http.StatusOK, export.LatLonPairs(t.Points()))
	case "rich":
		c.JSON(http.StatusOK, export.RichPoints(t.Points()))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format '%s'", format)})
	}
}

func (api *serveAPI) ServeHeat(c *gin.Context) {
	maxPoints := api.opts.MaxPoints
	if s, ok := c.GetQuery("maxPoints"); ok {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPoints must be a positive integer"})
			return
		}
		maxPoints = v
	}

	interpolate := api.opts.InterpolateDeg
	if s, ok := c.GetQuery("interpolate"); ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "interpolate must be a number"})
			return
		}
		if err := simplify.CheckInterpolateDeg(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		interpolate = v
	}

	api.mu.Lock()
	tracks := api.store.Tracks()
	api.mu.Unlock()

	points := simplify.Flatten(simplify.PrepareHeatPoints(tracks, maxPoints, interpolate))
	c.JSON(http.StatusOK, export.LatLonPairs(points))
}

func (api *serveAPI) ServeGeoJSON(c *gin.Context) {
	api.mu.Lock()
	defer api.mu.Unlock()

	c.JSON(http.StatusOK, export.GeoJSON(api.store.Tracks(), api.colors))
}
