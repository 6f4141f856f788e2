// Package sizediff turns per-file size measurements into a Markdown size-change report.
package sizediff

import (
	"fmt"
	"math"
)

// FileSize is one measured build artifact
type FileSize struct {
	Filename string
	Size     int64 // Current size in bytes
	Delta    int64 // Change in bytes compared to the baseline build
}

// Options controls how DiffTable classifies and renders files
type Options struct {
	ShowTotal              bool
	CollapseUnchanged      bool
	OmitUnchanged          bool
	MinimumChangeThreshold int64 // Files whose |delta| is below this are unchanged
}

// FileInfo holds the derived statistics for a single file
type FileInfo struct {
	Filename    string
	Difference  float64 // Percentage change truncated toward zero; non-finite for a zero baseline
	IsUnchanged bool
}

// Result is the rendered report plus its summary statistics
type Result struct {
	Markdown       string
	TotalSize      int64
	TotalDelta     int64
	TotalDeltaText string // Empty unless Options.ShowTotal is set
	FilesInfo      []FileInfo
}

// DiffTable computes the difference of every file and renders the size report.
// FilesInfo always has one entry per input file, in input order, even for rows that
// OmitUnchanged drops from the table.
func DiffTable(files []FileSize, opts Options) *Result {
	var changedRows, unchangedRows [][]string
	filesInfo := make([]FileInfo, 0, len(files))

	var totalSize, totalDelta int64
	for _, file := range files {
		totalSize += file.Size
		totalDelta += file.Delta

		difference := percentDifference(file.Size, file.Delta)
		isUnchanged := abs(file.Delta) < opts.MinimumChangeThreshold

		filesInfo = append(filesInfo, FileInfo{
			Filename:    file.Filename,
			Difference:  difference,
			IsUnchanged: isUnchanged,
		})

		if isUnchanged && opts.OmitUnchanged {
			continue
		}

		columns := []string{
			"`" + file.Filename + "`",
			FormatBytes(file.Size),
			DeltaText(file.Delta, difference),
			IconForDifference(difference),
		}
		if isUnchanged && opts.CollapseUnchanged {
			unchangedRows = append(unchangedRows, columns)
		} else {
			changedRows = append(changedRows, columns)
		}
	}

	out := MarkdownTable(changedRows)

	if len(unchangedRows) != 0 {
		out += fmt.Sprintf("\n\n<details><summary>ℹ️ <strong>View Unchanged</strong></summary>\n\n%s\n\n</details>\n\n",
			MarkdownTable(unchangedRows))
	}

	var totalDeltaText string
	if opts.ShowTotal {
		totalDifference := percentDifference(totalSize, totalDelta)
		totalDeltaText = DeltaText(totalDelta, totalDifference)
		totalIcon := IconForDifference(totalDifference)
		out = fmt.Sprintf("**Total Size:** %s\n\n%s", FormatBytes(totalSize), out)
		out = fmt.Sprintf("**Size Change:** %s %s\n\n%s", totalDeltaText, totalIcon, out)
	}

	return &Result{
		Markdown:       out,
		TotalSize:      totalSize,
		TotalDelta:     totalDelta,
		TotalDeltaText: totalDeltaText,
		FilesInfo:      filesInfo,
	}
}

// percentDifference returns delta relative to the size before the change, as a percentage
// truncated toward zero. A zero baseline is not special-cased and yields ±Inf or NaN.
func percentDifference(size, delta int64) float64 {
	sizeBefore := size - delta
	return math.Trunc(float64(delta) / float64(sizeBefore) * 100)
}
