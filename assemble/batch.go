package assemble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bgraf/trackheat/geotrack"
	"github.com/bgraf/trackheat/option"
)

// Source is one recording of a batch. Load is called when the batch reaches
// the source, so files are read one at a time.
type Source struct {
	Name string
	Load func() ([]byte, error)
}

func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Load: func() ([]byte, error) {
			return os.ReadFile(path)
		},
	}
}

func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Load: func() ([]byte, error) {
			return data, nil
		},
	}
}

// FileResult is the outcome for one source: either a track or the error
// that made the file fail.
type FileResult struct {
	Filename string
	Track    *geotrack.Track
	Err      error
}

func (r FileResult) OK() bool {
	return r.Err == nil
}

// Totals accumulate over the successful files of a batch.
type Totals struct {
	Files      int
	Failed     int
	Points     int
	DistanceKm float64
	Dates      option.Option[geotrack.DateRange]
}

func (t *Totals) add(track *geotrack.Track) {
	t.Points += track.Len()
	t.DistanceKm += track.DistanceKm()
	t.Dates = geotrack.MergeDateRanges(t.Dates, track.DateRange())
}

type BatchResult struct {
	Results []FileResult
	Totals  Totals
}

// Tracks returns the tracks of the successful files in source order.
func (r BatchResult) Tracks() []*geotrack.Track {
	var tracks []*geotrack.Track
	for _, res := range r.Results {
		if res.OK() {
			tracks = append(tracks, res.Track)
		}
	}
	return tracks
}

// Batch processes sources one after the other. A failing file is recorded
// in its result and never aborts the batch.
type Batch struct {
	parser *Parser
	totals Totals
}

func NewBatch(parser *Parser) *Batch {
	return &Batch{parser: parser}
}

// Run resets the running totals and parses the sources in order. Between
// files it yields to the scheduler and checks ctx; a canceled context stops
// the batch before the next file and returns the results so far together
// with the context error. A file in progress is always completed.
func (b *Batch) Run(ctx context.Context, sources []Source) (BatchResult, error) {
	b.totals = Totals{}
	result := BatchResult{Results: make([]FileResult, 0, len(sources))}

	for i, src := range sources {
		if i > 0 {
			runtime.Gosched()
		}
		if err := ctx.Err(); err != nil {
			result.Totals = b.totals
			return result, err
		}

		res := b.process(src)
		b.totals.Files++
		if res.OK() {
			b.totals.add(res.Track)
		} else {
			b.totals.Failed++
			Logf("failed: %s", res.Err)
		}
		result.Results = append(result.Results, res)
	}

	result.Totals = b.totals
	return result, nil
}

func (b *Batch) process(src Source) FileResult {
	res := FileResult{Filename: src.Name}

	data, err := src.Load()
	if err != nil {
		res.Err = fmt.Errorf("load %s: %w", src.Name, err)
		return res
	}

	res.Track, res.Err = b.parser.Parse(src.Name, data)
	return res
}
