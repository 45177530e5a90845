package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MimeLyc/tagged-doc-translator/pkg/file"
	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

// RunAll pushes every document through the runner with at most
// concurrency in flight. A worker panic fails only its own document;
// results are collected as workers finish and returned in input order.
func RunAll(ctx context.Context, runner *Runner, paths []string, concurrency int) []FileResult {
	if concurrency <= 0 {
		concurrency = 10
	}

	for _, path := range paths {
		runner.tracker.Register(path)
	}

	var mu sync.Mutex
	results := make(map[string]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			result := processGuarded(ctx, runner, path)
			mu.Lock()
			results[path] = result
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors, so this cannot fail; context
	// cancellation surfaces as failed results instead.
	_ = g.Wait()

	ordered := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		ordered = append(ordered, results[path])
	}
	return ordered
}

// processGuarded isolates one document's processing so a panic in a
// worker is downgraded to a failed result for that document only.
func processGuarded(ctx context.Context, runner *Runner, path string) (result FileResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("worker panic on %s: %v", filepath.Base(path), rec)
			result = FileResult{
				Path:   path,
				Status: StatusFailed,
				Err:    fmt.Errorf("worker panic: %v", rec),
			}
			runner.tracker.Update(path, func(fp *FileProgress) {
				fp.Status = StatusFailed
			})
		}
	}()
	return runner.ProcessFile(ctx, path)
}

// DiscoverDocuments lists the tagged documents queued in the staging
// directory, sorted by name.
func DiscoverDocuments(docsDir string) ([]string, error) {
	paths, err := file.ListWithExt(docsDir, ".html")
	if err != nil {
		return nil, fmt.Errorf("failed to list staging directory: %w", err)
	}
	return paths, nil
}
