package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomdtok/internal/configloader"
	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/fsutil"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// Exit codes for gomdtok, following sysexits.h.
const (
	// ExitSuccess indicates every file was tokenized.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed is returned when at least one file could not be tokenized.
var ErrFilesFailed = errors.New("some files could not be tokenized")

// ExitError carries the exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withCode wraps err with an exit code. A nil err stays nil.
func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// usageError marks err as a command-line usage error.
func usageError(err error) error {
	return withCode(ExitInvalidUsage, err)
}

// ExitCode maps an error returned by the root command to a process exit
// code. Errors without an explicit code are classified by their sentinels.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, configloader.ErrInvalidConfig),
		errors.Is(err, block.ErrUnknownRule),
		errors.Is(err, block.ErrParagraphRequired):
		return ExitConfigError
	case isIOError(err):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// exitCodeFromResult returns the exit code for a finished run: success,
// I/O error if any file failed to read, internal error otherwise.
func exitCodeFromResult(result *runner.Result) int {
	if !result.HasErrors() {
		return ExitSuccess
	}

	for _, file := range result.Files {
		if file.Error != nil && !isIOError(file.Error) {
			return ExitInternalError
		}
	}
	return ExitIOError
}

func isIOError(err error) bool {
	return errors.Is(err, fsutil.ErrNotFound) ||
		errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fsutil.ErrIsDirectory) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
