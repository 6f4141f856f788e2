package bundle

import (
	"maps"
	"slices"

	"pr-toolkit/internal/sizediff"
)

// Compare pairs the files of two snapshots into size records sorted by filename.
// Files only present in head have a delta equal to their size; files only present in
// base are reported with size 0 and a negative delta.
func Compare(base, head Snapshot) []sizediff.FileSize {
	names := make(map[string]struct{}, len(head))
	for name := range head {
		names[name] = struct{}{}
	}
	for name := range base {
		names[name] = struct{}{}
	}

	sorted := slices.Sorted(maps.Keys(names))

	files := make([]sizediff.FileSize, 0, len(sorted))
	for _, name := range sorted {
		size := head[name]
		files = append(files, sizediff.FileSize{
			Filename: name,
			Size:     size,
			Delta:    size - base[name],
		})
	}

	return files
}
