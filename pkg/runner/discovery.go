package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// discoverer collects Markdown files for one Discover call.
type discoverer struct {
	ctx        context.Context //nolint:containedctx // scoped to a single Discover call
	workDir    string
	extensions []string
	includes   []string
	excludes   []string
	follow     bool

	seen  map[string]struct{}
	files []string
}

// Discover finds Markdown files matching opts. It returns a sorted,
// deduplicated list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		includes:   opts.IncludeGlobs,
		excludes:   opts.effectiveExcludes(),
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if d.matches(absPath) {
				d.add(absPath)
			}
			continue
		}

		if err := d.walk(absPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// rel returns path relative to the working directory, for glob matching.
func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk adds matching files under root. Hidden entries below root and
// excluded directories are skipped; unreadable directories are ignored.
func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || matchesAny(d.rel(path), d.excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(path)
		}

		if d.matches(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// symlink handles a symlink found while walking. Broken links are skipped;
// directory links are only walked when following is enabled, through their
// target so WalkDir does not loop on the link itself.
func (d *discoverer) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // inaccessible targets are skipped
	}

	if info.IsDir() {
		if !d.follow {
			return nil
		}
		return d.walk(target)
	}

	if d.matches(path) {
		d.add(path)
	}
	return nil
}

// matches checks extension, exclude and include patterns.
func (d *discoverer) matches(path string) bool {
	if !slices.Contains(d.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	relPath := d.rel(path)
	if matchesAny(relPath, d.excludes) {
		return false
	}

	return len(d.includes) == 0 || matchesAny(relPath, d.includes)
}

func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(relPath, pattern)
	})
}

// matchGlob matches a slash-separated relative path against a pattern.
// Besides filepath.Match syntax it understands "dir/**" (anything under
// dir), "**/name" (name at any depth) and "a/**/b" (b anywhere under a).
// Patterns without a slash also match the base name.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	prefix, suffix, found := strings.Cut(pattern, "**")
	if !found {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		ok, _ := filepath.Match(pattern, filepath.Base(path))
		return ok
	}

	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	for _, part := range strings.Split(path, "/") {
		if ok, _ := filepath.Match(suffix, part); ok {
			return true
		}
	}
	return strings.HasSuffix(path, "/"+suffix) || path == suffix
}
