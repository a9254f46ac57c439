// Package runner tokenizes many Markdown files concurrently.
package runner

import "github.com/yaklabco/gomdtok/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories. The config's Ignore
	// patterns are appended to them.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveExcludes() []string {
	if o.Config == nil || len(o.Config.Ignore) == 0 {
		return o.ExcludeGlobs
	}
	excludes := make([]string, 0, len(o.ExcludeGlobs)+len(o.Config.Ignore))
	excludes = append(excludes, o.ExcludeGlobs...)
	return append(excludes, o.Config.Ignore...)
}
