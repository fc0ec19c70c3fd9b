package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/bgraf/trackheat/assemble"
	"github.com/bgraf/trackheat/config"
	"github.com/bgraf/trackheat/filesystem"
	"github.com/bgraf/trackheat/fitfile"
)

func newParser() (*assemble.Parser, error) {
	decoder, err := fitfile.NewDecoder(config.Decoder())
	if err != nil {
		return nil, err
	}

	return assemble.NewParser(decoder, config.Policy()), nil
}

// loadTracks gathers all recordings below args and parses them as one batch.
func loadTracks(ctx context.Context, args []string) (assemble.BatchResult, error) {
	if len(args) == 0 {
		return assemble.BatchResult{}, fmt.Errorf("no files or directories given")
	}

	paths, err := filesystem.GatherFiles(args, assemble.SupportedExtensions())
	if err != nil {
		return assemble.BatchResult{}, err
	}

	parser, err := newParser()
	if err != nil {
		return assemble.BatchResult{}, err
	}

	sources := make([]assemble.Source, len(paths))
	for i, p := range paths {
		sources[i] = assemble.FileSource(p)
	}

	result, err := assemble.NewBatch(parser).Run(ctx, sources)
	if err != nil {
		return result, err
	}

	totals := result.Totals
	log.Printf("%d files, %d failed, %d points, %.1f km", totals.Files, totals.Failed, totals.Points, totals.DistanceKm)

	return result, nil
}
