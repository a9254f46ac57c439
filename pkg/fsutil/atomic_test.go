package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gomdtok/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.yml")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("flavor: gfm\n"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "flavor: gfm\n" {
			t.Errorf("content = %q", got)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %v, want %v", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.yml")
		if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(entries))
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.yml")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected an error for a missing directory")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "out.yml")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Error("file should not exist after a cancelled write")
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.yml")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	if err != nil || !written {
		t.Fatalf("first write: written=%v err=%v", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	if err != nil || written {
		t.Fatalf("unchanged write: written=%v err=%v", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	if err != nil || !written {
		t.Fatalf("changed write: written=%v err=%v", written, err)
	}
}
