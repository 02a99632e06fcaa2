package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	journalfmt "github.com/alnah/go-journalfmt"
	"github.com/alnah/go-journalfmt/internal/fileutil"
)

// fileResult is the outcome of formatting one manuscript.
type fileResult struct {
	Input    string             `json:"input"`
	Output   string             `json:"output,omitempty"`
	Report   *journalfmt.Report `json:"report,omitempty"`
	Err      error              `json:"-"`
	ErrText  string             `json:"error,omitempty"`
	Duration time.Duration      `json:"-"`
}

// formatBatch formats files concurrently with a bounded worker pool.
// Results are positionally stable: results[i] belongs to files[i].
func formatBatch(ctx context.Context, fmtr *journalfmt.Formatter, files []string, flags *cliFlags) []fileResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := resolveWorkers(flags.workers)
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]fileResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = fileResult{Input: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = formatFile(ctx, fmtr, files[idx], flags)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if results[i].Err != nil {
			results[i].ErrText = results[i].Err.Error()
		}
	}
	return results
}

// formatFile reads, formats, and writes one manuscript.
func formatFile(ctx context.Context, fmtr *journalfmt.Formatter, input string, flags *cliFlags) fileResult {
	start := time.Now()
	result := fileResult{Input: input}

	doc, err := journalfmt.ReadDocument(input)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	report, err := fmtr.Format(ctx, journalfmt.Input{Document: doc, JournalID: flags.journal})
	if err != nil {
		result.Err = fmt.Errorf("formatting %s: %w", input, err)
		result.Duration = time.Since(start)
		return result
	}
	result.Report = report

	output := fileutil.OutputPath(input, flags.journal, flags.output)
	if err := journalfmt.WriteDocument(doc, input, output); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Output = output
	result.Duration = time.Since(start)
	return result
}

// resolveWorkers picks the worker count: explicit flag, else half of
// GOMAXPROCS (adjusted for containers by automaxprocs), clamped 1..8.
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
