package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtok/internal/configloader"
	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/fsutil"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"explicit code", withCode(ExitIOError, errors.New("boom")), ExitIOError},
		{"usage", usageError(errors.New("bad flag")), ExitInvalidUsage},
		{"wrapped explicit code", fmt.Errorf("outer: %w", usageError(errors.New("x"))), ExitInvalidUsage},
		{"invalid config", fmt.Errorf("load: %w", configloader.ErrInvalidConfig), ExitConfigError},
		{"unknown rule", fmt.Errorf("build: %w", block.ErrUnknownRule), ExitConfigError},
		{"paragraph required", block.ErrParagraphRequired, ExitConfigError},
		{"not found", fmt.Errorf("read: %w", fsutil.ErrNotFound), ExitIOError},
		{"fs not exist", &fs.PathError{Op: "stat", Path: "x.md", Err: fs.ErrNotExist}, ExitIOError},
		{"other", errors.New("unexpected"), ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestWithCodeNil(t *testing.T) {
	assert.NoError(t, withCode(ExitIOError, nil))
}

func TestExitErrorUnwrap(t *testing.T) {
	err := withCode(ExitConfigError, block.ErrUnknownRule)
	assert.ErrorIs(t, err, block.ErrUnknownRule)
	assert.Equal(t, block.ErrUnknownRule.Error(), err.Error())
}

func TestExitCodeFromResult(t *testing.T) {
	ok := runner.FileOutcome{Path: "a.md"}
	missing := runner.FileOutcome{Path: "b.md", Error: fsutil.ErrNotFound}
	broken := runner.FileOutcome{Path: "c.md", Error: errors.New("unbalanced stream")}

	tests := []struct {
		name  string
		files []runner.FileOutcome
		want  int
	}{
		{"all ok", []runner.FileOutcome{ok}, ExitSuccess},
		{"io only", []runner.FileOutcome{ok, missing}, ExitIOError},
		{"internal wins", []runner.FileOutcome{missing, broken}, ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &runner.Result{Files: tt.files}
			for _, f := range tt.files {
				if f.Error != nil {
					result.Stats.FilesErrored++
				}
			}
			assert.Equal(t, tt.want, exitCodeFromResult(result))
		})
	}
}
