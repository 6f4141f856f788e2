package sizediff

import (
	"math"
	"strings"
	"testing"
)

func sampleFiles() []FileSize {
	return []FileSize{
		{Filename: "one.js", Size: 5000, Delta: 2500},
		{Filename: "two.js", Size: 4000, Delta: -1000},
		{Filename: "three.js", Size: 505, Delta: 5},
	}
}

func defaultOptions() Options {
	return Options{
		ShowTotal:              true,
		CollapseUnchanged:      true,
		OmitUnchanged:          false,
		MinimumChangeThreshold: 100,
	}
}

func TestDiffTable_Statistics(t *testing.T) {
	result := DiffTable(sampleFiles(), defaultOptions())

	if result.TotalDelta != 1505 {
		t.Errorf("TotalDelta = %d, want 1505", result.TotalDelta)
	}
	if result.TotalSize != 9505 {
		t.Errorf("TotalSize = %d, want 9505", result.TotalSize)
	}

	expected := []FileInfo{
		{Filename: "one.js", Difference: 100, IsUnchanged: false},
		{Filename: "two.js", Difference: -20, IsUnchanged: false},
		{Filename: "three.js", Difference: 1, IsUnchanged: true},
	}
	if len(result.FilesInfo) != len(expected) {
		t.Fatalf("len(FilesInfo) = %d, want %d", len(result.FilesInfo), len(expected))
	}
	for i, want := range expected {
		if result.FilesInfo[i] != want {
			t.Errorf("FilesInfo[%d] = %+v, want %+v", i, result.FilesInfo[i], want)
		}
	}
}

func TestDiffTable_Markdown(t *testing.T) {
	result := DiffTable(sampleFiles(), defaultOptions())

	expected := "**Size Change:** +1.5 kB (18%) ⚠️\n\n" +
		"**Total Size:** 9.5 kB\n\n" +
		"| Filename | Size | Change |  |\n" +
		"| :--- | :---: | :---: | :---: |\n" +
		"| `one.js` | 5 kB | +2.5 kB (100%) | 🆘 |\n" +
		"| `two.js` | 4 kB | -1 kB (20%) | 🎉 |" +
		"\n\n<details><summary>ℹ️ <strong>View Unchanged</strong></summary>\n\n" +
		"| Filename | Size | Change |\n" +
		"| :--- | :---: | :---: |\n" +
		"| `three.js` | 505 B | +5 B (1%) |" +
		"\n\n</details>\n\n"

	if result.Markdown != expected {
		t.Errorf("Markdown =\n%s\nwant\n%s", result.Markdown, expected)
	}
	if result.TotalDeltaText != "+1.5 kB (18%)" {
		t.Errorf("TotalDeltaText = %q, want %q", result.TotalDeltaText, "+1.5 kB (18%)")
	}
}

func TestDiffTable_WithoutTotal(t *testing.T) {
	opts := defaultOptions()
	opts.ShowTotal = false

	result := DiffTable(sampleFiles(), opts)

	if result.TotalDeltaText != "" {
		t.Errorf("TotalDeltaText = %q, want empty", result.TotalDeltaText)
	}
	if strings.Contains(result.Markdown, "Total Size") || strings.Contains(result.Markdown, "Size Change") {
		t.Errorf("Markdown should not contain totals:\n%s", result.Markdown)
	}
	// Totals are still aggregated
	if result.TotalSize != 9505 || result.TotalDelta != 1505 {
		t.Errorf("totals = (%d, %d), want (9505, 1505)", result.TotalSize, result.TotalDelta)
	}
}

func TestDiffTable_CollapseDisabled(t *testing.T) {
	opts := defaultOptions()
	opts.CollapseUnchanged = false

	result := DiffTable(sampleFiles(), opts)

	if strings.Contains(result.Markdown, "<details>") || strings.Contains(result.Markdown, "<summary>") {
		t.Errorf("Markdown should not contain a details block:\n%s", result.Markdown)
	}
	if !strings.Contains(result.Markdown, "| `three.js` | 505 B | +5 B (1%) |  |") {
		t.Errorf("unchanged row should be rendered inline:\n%s", result.Markdown)
	}
}

func TestDiffTable_OmitUnchanged(t *testing.T) {
	opts := defaultOptions()
	opts.OmitUnchanged = true

	result := DiffTable(sampleFiles(), opts)

	if strings.Contains(result.Markdown, "three.js") {
		t.Errorf("omitted file rendered:\n%s", result.Markdown)
	}
	if len(result.FilesInfo) != 3 {
		t.Errorf("len(FilesInfo) = %d, want 3", len(result.FilesInfo))
	}
	if !result.FilesInfo[2].IsUnchanged {
		t.Error("FilesInfo[2].IsUnchanged should be true")
	}
}

func TestDiffTable_OmitAllUnchanged(t *testing.T) {
	files := []FileSize{
		{Filename: "a.js", Size: 1000, Delta: 0},
		{Filename: "b.js", Size: 2000, Delta: 10},
	}
	opts := Options{OmitUnchanged: true, CollapseUnchanged: true, MinimumChangeThreshold: 100}

	result := DiffTable(files, opts)

	if result.Markdown != "" {
		t.Errorf("Markdown = %q, want empty", result.Markdown)
	}
	if len(result.FilesInfo) != len(files) {
		t.Errorf("len(FilesInfo) = %d, want %d", len(result.FilesInfo), len(files))
	}
}

func TestDiffTable_SingleUnchangedFileDropsChangeColumns(t *testing.T) {
	files := []FileSize{{Filename: "a.js", Size: 1000, Delta: 0}}
	opts := Options{MinimumChangeThreshold: 1}

	result := DiffTable(files, opts)

	expected := "| Filename | Size | Change |\n" +
		"| :--- | :---: | :---: |\n" +
		"| `a.js` | 1 kB | 0 B |"
	if result.Markdown != expected {
		t.Errorf("Markdown =\n%s\nwant\n%s", result.Markdown, expected)
	}
}

func TestDiffTable_IsUnchangedUsesThreshold(t *testing.T) {
	tests := []struct {
		name      string
		delta     int64
		threshold int64
		want      bool
	}{
		{"zero threshold never unchanged", 0, 0, false},
		{"default threshold zero delta", 0, 1, true},
		{"default threshold one byte", 1, 1, false},
		{"negative below threshold", -99, 100, true},
		{"negative at threshold", -100, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := []FileSize{{Filename: "a.js", Size: 1000, Delta: tt.delta}}
			result := DiffTable(files, Options{MinimumChangeThreshold: tt.threshold})
			if result.FilesInfo[0].IsUnchanged != tt.want {
				t.Errorf("IsUnchanged = %v, want %v", result.FilesInfo[0].IsUnchanged, tt.want)
			}
		})
	}
}

func TestDiffTable_TruncatesTowardZero(t *testing.T) {
	// 1030 / 5000 = -20.6% must truncate to -20, not round to -21
	files := []FileSize{{Filename: "a.js", Size: 3970, Delta: -1030}}

	result := DiffTable(files, Options{MinimumChangeThreshold: 1})

	if result.FilesInfo[0].Difference != -20 {
		t.Errorf("Difference = %v, want -20", result.FilesInfo[0].Difference)
	}
}

func TestDiffTable_ZeroBaseline(t *testing.T) {
	// A brand new file has no baseline; the percentage is not special-cased
	files := []FileSize{
		{Filename: "new.js", Size: 100, Delta: 100},
		{Filename: "empty.js", Size: 0, Delta: 0},
	}

	result := DiffTable(files, Options{MinimumChangeThreshold: 1})

	if !math.IsInf(result.FilesInfo[0].Difference, 1) {
		t.Errorf("Difference = %v, want +Inf", result.FilesInfo[0].Difference)
	}
	if !math.IsNaN(result.FilesInfo[1].Difference) {
		t.Errorf("Difference = %v, want NaN", result.FilesInfo[1].Difference)
	}
	if !strings.Contains(result.Markdown, "| `new.js` | 100 B | +100 B (Infinity%) | 🆘 |") {
		t.Errorf("unexpected markdown for new file:\n%s", result.Markdown)
	}
}

func TestDiffTable_Idempotent(t *testing.T) {
	first := DiffTable(sampleFiles(), defaultOptions())
	second := DiffTable(sampleFiles(), defaultOptions())

	if first.Markdown != second.Markdown || first.TotalDeltaText != second.TotalDeltaText {
		t.Error("DiffTable should produce identical output for identical input")
	}
}

func TestDiffTable_Empty(t *testing.T) {
	result := DiffTable(nil, Options{ShowTotal: true, MinimumChangeThreshold: 1})

	if len(result.FilesInfo) != 0 {
		t.Errorf("len(FilesInfo) = %d, want 0", len(result.FilesInfo))
	}
	if result.TotalDeltaText != "0 B" {
		t.Errorf("TotalDeltaText = %q, want %q", result.TotalDeltaText, "0 B")
	}
}
