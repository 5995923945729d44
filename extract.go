package sarc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ExtractStats reports what Extract did.
type ExtractStats struct {
	// Extracted is the number of files written.
	Extracted int
	// Skipped counts files left alone because the destination existed or
	// the name was shadowed by an earlier record.
	Skipped int
	// Missing counts requested names not present in the archive.
	Missing int
	// Bytes is the total size of the files written.
	Bytes uint64
}

// Extract writes archive files into dir.
//
// If names is empty every file is extracted; otherwise only the named
// files are. Names may contain slashes, which become subdirectories of
// dir. Names that would escape dir are rejected with an *fs.PathError.
//
// Files are written atomically using temp files and renames. By default
// existing files are skipped (use ExtractWithOverwrite to replace them).
func Extract(ctx context.Context, a *Archive, dir string, names []string, opts ...ExtractOption) (ExtractStats, error) {
	var stats ExtractStats
	if err := a.Err(); err != nil {
		return stats, err
	}

	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	views, skipped, missing := collectViews(a, names)
	stats.Skipped = skipped
	stats.Missing = missing
	for _, view := range views {
		if !fs.ValidPath(view.Name()) || view.Name() == "." {
			return stats, &fs.PathError{Op: "extract", Path: view.Name(), Err: fs.ErrInvalid}
		}
	}
	if len(views) == 0 {
		return stats, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stats, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return stats, err
	}
	defer root.Close()

	workers := cfg.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var extracted, existing atomic.Int64
	var written atomic.Uint64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, view := range views {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name := filepath.FromSlash(view.Name())
			if !cfg.overwrite {
				if _, err := root.Lstat(name); err == nil {
					existing.Add(1)
					return nil
				}
			}
			if parent := filepath.Dir(name); parent != "." {
				if err := root.MkdirAll(parent, 0o755); err != nil {
					return err
				}
			}
			if err := writeFileAtomic(root, name, view.Data(), cfg.overwrite); err != nil {
				return fmt.Errorf("extract %s: %w", view.Name(), err)
			}
			extracted.Add(1)
			written.Add(uint64(view.Size()))
			return nil
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	stats.Extracted = int(extracted.Load())
	stats.Skipped += int(existing.Load())
	stats.Bytes = written.Load()
	log.Debug("archive extracted",
		"dir", dir,
		"extracted", stats.Extracted,
		"skipped", stats.Skipped,
		"missing", stats.Missing,
		"bytes", stats.Bytes)
	return stats, err
}

// collectViews resolves the files to extract. Only the first record with
// a given name is used, matching Archive.Find.
func collectViews(a *Archive, names []string) (views []FileView, skipped, missing int) {
	if len(names) == 0 {
		seen := make(map[string]struct{})
		for _, view := range a.Files() {
			if !view.Valid() {
				skipped++
				continue
			}
			name := view.Name()
			if _, dup := seen[name]; dup {
				skipped++
				continue
			}
			seen[name] = struct{}{}
			views = append(views, view)
		}
		return views, skipped, missing
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		view := a.Find(name)
		if !view.Valid() {
			missing++
			continue
		}
		views = append(views, view)
	}
	return views, skipped, missing
}

// writeFileAtomic writes data to name via a temp file in the same
// directory. All operations stay inside root, so symlinks in the
// destination tree cannot redirect writes outside it.
func writeFileAtomic(root *os.Root, name string, data []byte, overwrite bool) error {
	tmpName := filepath.Join(filepath.Dir(name), ".sarc-"+strconv.FormatUint(rand.Uint64(), 36))
	tmp, err := root.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	success := false
	defer func() {
		if !success {
			tmp.Close()
			root.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	// os.Rename does not replace existing files on Windows.
	if overwrite {
		if info, err := root.Lstat(name); err == nil && info.IsDir() {
			return &fs.PathError{Op: "extract", Path: name, Err: errors.New("is a directory")}
		}
		_ = root.Remove(name)
	}

	if err := root.Rename(tmpName, name); err != nil {
		return fmt.Errorf("renaming to destination: %w", err)
	}
	success = true
	return nil
}
