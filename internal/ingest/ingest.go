// Package ingest parses and imports batches of LAS files with bounded
// concurrency.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/welllog/internal/fsutil"
	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/units"
)

// ErrIsDirectory is returned for an input path that names a directory.
var ErrIsDirectory = errors.New("is a directory")

// Options controls a batch.
type Options struct {
	Lookup   units.Lookup
	Encoding string
	// Workers bounds the number of files processed at once. Zero or less
	// means runtime.NumCPU().
	Workers int
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

// Result is the outcome for one input path. WellID is set only by
// ImportFiles.
type Result struct {
	Path   string
	Doc    *las.Document
	WellID string
	Err    error
}

// Store receives parsed documents from ImportFiles. Implementations must
// be safe for concurrent use.
type Store interface {
	Insert(doc *las.Document, sourcePath string) (string, error)
}

// ParseFile reads and parses a single file.
func ParseFile(fsys fsutil.FileSystem, path string, opts Options) (*las.Document, error) {
	if info, err := fsys.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	lines, err := fsutil.ReadLines(fsys, path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	doc, err := las.Parse(lines, opts.Lookup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseFiles parses every path and returns one Result per path in input
// order. A failing file does not stop the batch. Once ctx is done no
// further files are started and their results carry ctx.Err().
func ParseFiles(ctx context.Context, fsys fsutil.FileSystem, paths []string, opts Options) []Result {
	return run(ctx, paths, opts, func(path string) Result {
		doc, err := ParseFile(fsys, path, opts)
		return Result{Path: path, Doc: doc, Err: err}
	})
}

// ImportFiles parses every path and inserts each successfully parsed
// document into store.
func ImportFiles(ctx context.Context, fsys fsutil.FileSystem, paths []string, opts Options, store Store) []Result {
	return run(ctx, paths, opts, func(path string) Result {
		doc, err := ParseFile(fsys, path, opts)
		if err != nil {
			return Result{Path: path, Err: err}
		}
		id, err := store.Insert(doc, path)
		if err != nil {
			return Result{Path: path, Doc: doc, Err: fmt.Errorf("%s: %w", path, err)}
		}
		return Result{Path: path, Doc: doc, WellID: id}
	})
}

func run(ctx context.Context, paths []string, opts Options, fn func(string) Result) []Result {
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(opts.workers())

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(paths); j++ {
				results[j] = Result{Path: paths[j], Err: err}
			}
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				return nil
			}
			results[i] = fn(path)
			return nil
		})
	}
	g.Wait()
	return results
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
