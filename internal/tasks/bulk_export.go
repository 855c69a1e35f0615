package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/lacery/internal/formatter"
	"github.com/desertthunder/lacery/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk preset exports.
type BulkExportOpts struct {
	Format     string  // Export format: md, csv, yaml, txt
	OutputDir  string  // Base output directory (default: lacery_export_{epoch})
	NumWorkers int     // Concurrent writers (default: 5, at most 10)
	RateLimit  float64 // Preset loads per second (default: 5)
}

// ExportJob is one preset waiting to be written. Err is set when the preset failed to load.
type ExportJob struct {
	Name string
	Path string
	Rows []formatter.Row
	Err  error
}

// ExportResult is the outcome for one preset.
type ExportResult struct {
	Name     string `json:"name"`
	File     string `json:"file,omitempty"`
	Success  bool   `json:"success"`
	Error    error  `json:"-"`
	ErrorMsg string `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export and is written as the manifest.
type BulkExportResult struct {
	TotalPresets      int            `json:"total_presets"`
	SuccessfulExports int            `json:"successful_exports"`
	FailedExports     int            `json:"failed_exports"`
	Format            string         `json:"format"`
	OutputDirectory   string         `json:"output_directory"`
	ManifestPath      string         `json:"-"`
	Results           []ExportResult `json:"results"`
}

// BulkExport exports every named preset concurrently with rate limiting and progress tracking.
//
// Presets are loaded one at a time into a fresh panel, since panels are not safe for
// concurrent use, and the snapshots are written by a pool of workers. Individual failures
// are recorded in the result; only setup and manifest errors are returned.
func (e *Engine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, names []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.loader == nil || e.scene == nil {
		return nil, fmt.Errorf("%w: bulk export needs a preset loader and a scene", shared.ErrMissingArgument)
	}

	f, err := formatter.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("lacery_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPresets:    len(names),
		Format:          string(f),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ExportResult, 0, len(names)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ExportJob, len(names))
	results := make(chan ExportResult, len(names))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, f)
	}

	go func() {
		defer close(jobs)
		files := newFileNames()
		for i, name := range names {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, loadPresetUpdate(i+1, len(names), name))

			l, obj := e.scene()
			if err := e.loader.Apply(name, obj); err != nil {
				jobs <- ExportJob{Name: name, Err: fmt.Errorf("failed to load preset: %w", err)}
				continue
			}
			l.Update()

			path := filepath.Join(opts.OutputDir, files.claim(name)+"."+string(f))
			jobs <- ExportJob{Name: name, Path: path, Rows: formatter.Snapshot(l)}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(names), res))
		} else {
			result.FailedExports++
			e.logger.Warn("preset export failed", "name", res.Name, "error", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(names), res))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("bulk export interrupted: %w", err)
	}

	slices.SortFunc(result.Results, func(a, b ExportResult) int { return strings.Compare(a.Name, b.Name) })

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	e.sendProgress(prog, manifestUpdate(manifestPath))

	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes the jobs it receives until the channel closes or ctx is done. Only
// workers send on results.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ExportJob,
	results chan<- ExportResult,
	f formatter.Format,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if job.Err != nil {
			results <- failed(job.Name, job.Err)
			continue
		}

		written, err := formatter.WriteExport(string(f), job.Rows, job.Path)
		if err != nil {
			results <- failed(job.Name, err)
			continue
		}
		results <- ExportResult{Name: job.Name, File: written, Success: true}
	}
}

func failed(name string, err error) ExportResult {
	return ExportResult{Name: name, Error: err, ErrorMsg: err.Error()}
}

// fileName maps a preset name onto a safe base file name.
func fileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
	if clean == "" || clean == "." || clean == ".." {
		return "preset"
	}
	return clean
}

// fileNames hands out base file names that are unique within one export. Names are compared
// case-insensitively so they stay distinct on case-folding filesystems.
type fileNames map[string]bool

func newFileNames() fileNames { return fileNames{} }

// claim returns fileName(name), suffixed with _2, _3, ... when already taken.
func (fn fileNames) claim(name string) string {
	base := fileName(name)
	candidate := base
	for n := 2; fn[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
	fn[strings.ToLower(candidate)] = true
	return candidate
}
