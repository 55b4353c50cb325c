package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/enumcmp/internal/logging"
	"github.com/yaklabco/enumcmp/pkg/langdetect"
	"github.com/yaklabco/enumcmp/pkg/lint"
)

// headerBytes is how much of a file is read to look for an <auto-generated> marker.
const headerBytes = 2048

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently, at
// most opts.Jobs at a time. Outcomes are ordered by path. Per-file failures
// are recorded in the outcomes; the returned error is reserved for discovery
// failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldWorkingDir, opts.WorkingDir,
	)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	// Each slot is written by exactly one goroutine; done marks slots that
	// were reached before cancellation.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, file := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			outcomes[i] = r.processFile(groupCtx, file, opts, pipelineOpts)
			done[i] = true
			return nil
		})
	}
	_ = group.Wait()

	for i := range outcomes {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) processFile(
	ctx context.Context,
	file candidate,
	opts Options,
	pipelineOpts lint.PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: file.Path}
	ctx = logging.ForFile(ctx, file.Path)

	if !opts.IncludeGenerated && !file.Explicit {
		generated, err := hasGeneratedHeader(file.Path)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		if generated {
			logging.FromContext(ctx).Debug("skipping generated file")
			outcome.Generated = true
			return outcome
		}
	}

	pr, err := r.Pipeline.ProcessFile(ctx, file.Path, opts.Config, pipelineOpts)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = pr
	return outcome
}

func hasGeneratedHeader(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", lint.ErrFileNotFound, err)
	}
	defer f.Close()

	head := make([]byte, headerBytes)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read header %s: %w", path, err)
	}
	return langdetect.IsGenerated(path, head[:n]), nil
}
