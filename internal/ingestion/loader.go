package ingestion

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/logger"
)

// tableReader is an indirection for reading a single file; tests can override this.
var tableReader = ReadTable

// SkippedFile records an input that could not be used and why.
type SkippedFile struct {
	Path string
	Err  error
}

// LoadResult holds the tables that loaded, in configured order, and the
// files that were skipped.
type LoadResult struct {
	Tables  []*models.Table
	Skipped []SkippedFile
}

// Loader reads a fixed, ordered list of floorsheet files.
type Loader struct {
	paths    []string
	parallel int
}

// NewLoader returns a loader for paths. parallel bounds how many files are
// read at once; values below 1 mean sequential.
func NewLoader(paths []string, parallel int) *Loader {
	if parallel < 1 {
		parallel = 1
	}
	return &Loader{paths: paths, parallel: parallel}
}

// LoadAll reads every configured file. A file that cannot be read or lacks
// the required columns is skipped with a warning; it never aborts the run.
//
// Tables are returned in the configured order regardless of parallelism.
// The only error returned is a context cancellation.
func (l *Loader) LoadAll(ctx context.Context) (*LoadResult, error) {
	log := logger.For("loader")
	log.Info().Int("files", len(l.paths)).Int("parallel", l.parallel).Msg("load start")

	tables := make([]*models.Table, len(l.paths))
	errs := make([]error, len(l.paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallel)

	for i, path := range l.paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			t, err := tableReader(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				errs[i] = err
				return nil
			}
			tables[i] = t
			log.Info().Int("idx", i+1).Int("total", len(l.paths)).Str("file", path).
				Int("rows", t.Len()).Dur("elapsed", time.Since(start)).Msg("file loaded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &LoadResult{}
	for i, path := range l.paths {
		if errs[i] != nil {
			log.Warn().Str("file", path).Err(errs[i]).Msgf("Error reading %s: %v", path, errs[i])
			res.Skipped = append(res.Skipped, SkippedFile{Path: path, Err: errs[i]})
			continue
		}
		res.Tables = append(res.Tables, tables[i])
	}

	log.Info().Int("loaded", len(res.Tables)).Int("skipped", len(res.Skipped)).Msg("load done")
	return res, nil
}
