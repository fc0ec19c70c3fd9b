package serve

import (
	"context"
	"log"
	"sync"

	"github.com/bgraf/trackheat/assemble"
	"github.com/bgraf/trackheat/config"
	"github.com/bgraf/trackheat/export"
	"github.com/bgraf/trackheat/filesystem"
	"github.com/bgraf/trackheat/fitfile"
	"github.com/bgraf/trackheat/geotrack"
	"github.com/bgraf/trackheat/simplify"
	"github.com/gin-gonic/gin"
	"github.com/goodsign/monday"
	"github.com/spf13/cobra"
)

// Options configure the API independent of viper.
type Options struct {
	Parser         *assemble.Parser
	Locale         monday.Locale
	MaxPoints      int
	InterpolateDeg float64
}

func RunServeCmd(cmd *cobra.Command, args []string) error {
	decoder, err := fitfile.NewDecoder(config.Decoder())
	if err != nil {
		return err
	}

	locale, err := export.ParseLocale(config.Locale())
	if err != nil {
		return err
	}

	if err := simplify.CheckInterpolateDeg(config.InterpolateDeg()); err != nil {
		return err
	}

	api := newServeAPI(Options{
		Parser:         assemble.NewParser(decoder, config.Policy()),
		Locale:         locale,
		MaxPoints:      config.MaxPoints(),
		InterpolateDeg: config.InterpolateDeg(),
	})

	// Files given on the command line are loaded up front.
	if len(args) > 0 {
		paths, err := filesystem.GatherFiles(args, assemble.SupportedExtensions())
		if err != nil {
			return err
		}

		sources := make([]assemble.Source, len(paths))
		for i, p := range paths {
			sources[i] = assemble.FileSource(p)
		}

		if _, err := api.ingest(cmd.Context(), sources); err != nil {
			return err
		}
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	api.routes(r)

	listen := config.Listen()
	log.Printf("listening on %s", listen)
	if err = r.Run(listen); err != nil {
		log.Fatal(err)
	}

	return nil
}

type serveAPI struct {
	// mu serialises batches and guards the store
	mu     sync.Mutex
	batch  *assemble.Batch
	store  *trackStore
	colors *export.TrackColors
	opts   Options
}

func newServeAPI(opts Options) *serveAPI {
	if opts.Parser == nil {
		opts.Parser = assemble.NewParser(nil, assemble.DefaultPolicy())
	}
	if opts.Locale == "" {
		opts.Locale = monday.LocaleEnUS
	}

	return &serveAPI{
		batch:  assemble.NewBatch(opts.Parser),
		store:  newTrackStore(),
		colors: export.NewTrackColors(),
		opts:   opts,
	}
}

func (api *serveAPI) routes(r *gin.Engine) {
	r.POST("/tracks", api.ServeUpload)
	r.GET("/tracks", api.ServeTracks)
	r.GET("/tracks/:GUID", api.ServeTrack)
	r.DELETE("/tracks/:GUID", api.ServeDelete)
	r.GET("/tracks/:GUID/points", api.ServePoints)
	r.GET("/heat", api.ServeHeat)
	r.GET("/geojson", api.ServeGeoJSON)
}

// ingest runs one batch and stores its tracks. The returned entries follow
// source order.
func (api *serveAPI) ingest(ctx context.Context, sources []assemble.Source) (uploadResponse, error) {
	api.mu.Lock()
	defer api.mu.Unlock()

	result, err := api.batch.Run(ctx, sources)

	resp := uploadResponse{
		Results: make([]uploadEntry, 0, len(result.Results)),
		Totals:  newTotalsView(result.Totals),
	}
	for _, res := range result.Results {
		entry := uploadEntry{Filename: res.Filename}
		if res.OK() {
			guid := api.store.Add(res.Track)
			api.colors.HexColor(res.Track.Filename())
			entry.ID = guid.String()
			sum := api.summary(res.Track)
			entry.Summary = &sum
		} else {
			entry.Error = res.Err.Error()
		}
		resp.Results = append(resp.Results, entry)
	}

	return resp, err
}

func (api *serveAPI) summary(t *geotrack.Track) export.Summary {
	return export.Summaries([]*geotrack.Track{t}, api.opts.Locale)[0]
}
