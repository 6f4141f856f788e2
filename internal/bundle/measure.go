// Package bundle measures the compressed size of build output and compares two builds.
package bundle

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFiles bounds how many files are compressed at once
const maxConcurrentFiles = 8

// Snapshot maps a slash-separated file path (relative to the measured root) to its size in bytes
type Snapshot map[string]int64

// MeasureOptions selects and sizes files
type MeasureOptions struct {
	Pattern     string              // Files to include, e.g. "**/dist/**/*.js"
	Exclude     string              // Files to skip, e.g. "{**/*.map,**/node_modules/**}"
	Compression string              // "none", "gzip" or "brotli"
	StripHash   func(string) string // Optional filename normalizer, see NewHashStripper
}

// Measure walks root and records the compressed size of every file matching the options
func Measure(ctx context.Context, root string, opts MeasureOptions) (Snapshot, error) {
	if !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("invalid pattern %q", opts.Pattern)
	}
	if opts.Exclude != "" && !doublestar.ValidatePattern(opts.Exclude) {
		return nil, fmt.Errorf("invalid exclude pattern %q", opts.Exclude)
	}

	files, err := matchFiles(root, opts.Pattern, opts.Exclude)
	if err != nil {
		return nil, err
	}

	slog.Debug("Measuring files", "root", root, "files", len(files), "compression", opts.Compression)

	sizes := make([]int64, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)

	for i, rel := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			size, err := compressedSize(filepath.Join(root, filepath.FromSlash(rel)), opts.Compression)
			if err != nil {
				return fmt.Errorf("failed to measure %s: %w", rel, err)
			}
			sizes[i] = size
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := make(Snapshot, len(files))
	for i, rel := range files {
		name := rel
		if opts.StripHash != nil {
			name = opts.StripHash(rel)
		}
		if _, exists := snapshot[name]; exists {
			slog.Debug("Multiple files share a name after hash stripping", "file", rel, "name", name)
		}
		snapshot[name] = sizes[i]
	}

	return snapshot, nil
}

// matchFiles returns the slash-separated relative paths under root that match pattern
// and not exclude, in lexical order
func matchFiles(root, pattern, exclude string) ([]string, error) {
	var files []string

	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if exclude != "" {
			if excluded, _ := doublestar.Match(exclude, p); excluded {
				return nil
			}
		}

		files = append(files, path.Clean(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}
