package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/gomdtok/internal/logging"
	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/fsutil"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// Runner tokenizes files with a shared block parser.
type Runner struct {
	// Parser is read-only once built and shared by all workers.
	Parser *block.Parser
}

// New creates a new Runner with the given parser.
func New(parser *block.Parser) *Runner {
	return &Runner{Parser: parser}
}

// Run discovers files under opts.Paths and tokenizes them concurrently.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			r.worker(ctx, workCh, outCh)
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// RunSource tokenizes a single in-memory document, such as stdin, under
// the given display name.
func (r *Runner) RunSource(ctx context.Context, name string, src []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1
	result.accumulate(r.ProcessSource(ctx, name, src))

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads and tokenizes one file.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		logging.FromContext(ctx).Warn("cannot read file", logging.FieldPath, path, logging.FieldError, err)
		return FileOutcome{Path: path, Error: err}
	}

	outcome := r.ProcessSource(ctx, path, content)
	outcome.Info = info
	return outcome
}

// ProcessSource tokenizes src. A stream that fails validation is reported
// as the file's error.
func (r *Runner) ProcessSource(ctx context.Context, path string, src []byte) FileOutcome {
	outcome := FileOutcome{Path: path}

	stream, err := r.Parser.Parse(ctx, string(src), nil)
	if err != nil {
		outcome.Error = fmt.Errorf("tokenize %s: %w", path, err)
		return outcome
	}

	root, err := mdast.BuildValid(stream)
	if err != nil {
		logging.FromContext(ctx).Error("invalid token stream", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = fmt.Errorf("tokenize %s: %w", path, err)
		return outcome
	}

	outcome.Tokens = stream
	outcome.Stats = Summarize(stream)
	outcome.Stats.NestedLists = CountNestedLists(root)
	return outcome
}
