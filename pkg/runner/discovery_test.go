package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/gomdtok/pkg/config"
	"github.com/yaklabco/gomdtok/pkg/runner"
)

// makeTree creates files (slash-separated, relative to dir) with content.
func makeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relAll returns discovered paths relative to dir, slash-separated.
func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"readme.md":                  "x",
		"docs/guide.md":              "x",
		"docs/api.MARKDOWN":          "x",
		"docs/notes.txt":             "x",
		"vendor/lib/readme.md":       "x",
		"node_modules/pkg/readme.md": "x",
		".hidden/secret.md":          "x",
		".draft.md":                  "x",
		"src/main.go":                "x",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "directory defaults",
			opts: runner.Options{Paths: []string{"."}},
			want: []string{
				"docs/api.MARKDOWN", "docs/guide.md",
				"node_modules/pkg/readme.md", "readme.md", "vendor/lib/readme.md",
			},
		},
		{
			name: "empty paths mean the working directory",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "node_modules/**"}},
			want: []string{"docs/api.MARKDOWN", "docs/guide.md", "readme.md"},
		},
		{
			name: "config ignore patterns",
			opts: runner.Options{
				ExcludeGlobs: []string{"vendor/**"},
				Config:       &config.Config{Ignore: []string{"**/node_modules"}},
			},
			want: []string{"docs/api.MARKDOWN", "docs/guide.md", "readme.md"},
		},
		{
			name: "include globs",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api.MARKDOWN", "docs/guide.md"},
		},
		{
			name: "base name pattern",
			opts: runner.Options{ExcludeGlobs: []string{"readme.md"}},
			want: []string{"docs/api.MARKDOWN", "docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".txt", ".go"}},
			want: []string{"docs/notes.txt", "src/main.go"},
		},
		{
			name: "explicit files and directories are deduplicated",
			opts: runner.Options{Paths: []string{"docs/guide.md", "docs", "readme.md", "docs/notes.txt"}},
			want: []string{"docs/api.MARKDOWN", "docs/guide.md", "readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			makeTree(t, dir, tree)

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relAll(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"local/doc.md": "x"})

	external := t.TempDir()
	makeTree(t, external, map[string]string{"external.md": "x"})

	if err := os.Symlink(filepath.Join(dir, "local", "doc.md"), filepath.Join(dir, "alias.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone.md"), filepath.Join(dir, "broken.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir}

	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if got := relAll(t, dir, files); !slices.Equal(got, []string{"alias.md", "local/doc.md"}) {
		t.Errorf("without following: %v", got)
	}

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if !slices.Contains(files, filepath.Join(external, "external.md")) || len(files) != 3 {
		t.Errorf("with following: %v", files)
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !slices.Equal(got, []string{".md", ".markdown"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}
