package bundle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pr-toolkit/internal/sizediff"
)

// writeFiles creates files (slash-separated relative paths) under a temp dir
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return root
}

func TestMeasure_PatternAndExclude(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"dist/main.js":                   "console.log(1)",
		"dist/main.js.map":               "{}",
		"dist/chunks/vendor.js":          "var a = 1;",
		"src/index.js":                   "export {}",
		"node_modules/pkg/dist/index.js": "module.exports = {}",
	})

	snapshot, err := Measure(context.Background(), root, MeasureOptions{
		Pattern:     "**/dist/**/*.js",
		Exclude:     "{**/*.map,**/node_modules/**}",
		Compression: CompressionNone,
	})
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	expected := Snapshot{
		"dist/main.js":          int64(len("console.log(1)")),
		"dist/chunks/vendor.js": int64(len("var a = 1;")),
	}
	if len(snapshot) != len(expected) {
		t.Fatalf("snapshot = %v, want %v", snapshot, expected)
	}
	for name, size := range expected {
		if snapshot[name] != size {
			t.Errorf("snapshot[%q] = %d, want %d", name, snapshot[name], size)
		}
	}
}

func TestMeasure_Compression(t *testing.T) {
	content := strings.Repeat("function add(a, b) { return a + b }\n", 200)
	root := writeFiles(t, map[string]string{"dist/app.js": content})

	for _, compression := range []string{CompressionGzip, CompressionBrotli} {
		t.Run(compression, func(t *testing.T) {
			snapshot, err := Measure(context.Background(), root, MeasureOptions{
				Pattern:     "**/*.js",
				Compression: compression,
			})
			if err != nil {
				t.Fatalf("Measure() error = %v", err)
			}

			size := snapshot["dist/app.js"]
			if size <= 0 || size >= int64(len(content)) {
				t.Errorf("compressed size = %d, want between 0 and %d", size, len(content))
			}
		})
	}
}

func TestMeasure_StripHash(t *testing.T) {
	root := writeFiles(t, map[string]string{"dist/main.1a2b3c4d.js": "x"})

	strip, err := NewHashStripper([]string{`\.(\w{8})\.js$`})
	if err != nil {
		t.Fatalf("NewHashStripper() error = %v", err)
	}

	snapshot, err := Measure(context.Background(), root, MeasureOptions{
		Pattern:     "dist/*.js",
		Compression: CompressionNone,
		StripHash:   strip,
	})
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if _, ok := snapshot["dist/main.********.js"]; !ok {
		t.Errorf("expected stripped filename, got %v", snapshot)
	}
}

func TestMeasure_InvalidPattern(t *testing.T) {
	_, err := Measure(context.Background(), t.TempDir(), MeasureOptions{Pattern: "[", Compression: CompressionNone})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestMeasure_UnsupportedCompression(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.js": "x"})

	_, err := Measure(context.Background(), root, MeasureOptions{Pattern: "*.js", Compression: "zip"})
	if err == nil || !strings.Contains(err.Error(), "unsupported compression") {
		t.Errorf("expected unsupported compression error, got %v", err)
	}
}

func TestNewHashStripper(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		input    string
		expected string
	}{
		{
			name:     "capture group is masked",
			patterns: []string{`\.(\w{8})\.js$`},
			input:    "dist/main.1a2b3c4d.js",
			expected: "dist/main.********.js",
		},
		{
			name:     "match without groups is removed",
			patterns: []string{`\.[0-9a-f]{8}`},
			input:    "main.1a2b3c4d.js",
			expected: "main.js",
		},
		{
			name:     "several groups",
			patterns: []string{`(\w{4})-(\w{4})\.css$`},
			input:    "styles.abcd-ef01.css",
			expected: "styles.****-****.css",
		},
		{
			name:     "patterns apply in order",
			patterns: []string{`\.(\w{8})\.js$`, `^dist/`},
			input:    "dist/main.1a2b3c4d.js",
			expected: "main.********.js",
		},
		{
			name:     "no match leaves filename",
			patterns: []string{`\.(\w{8})\.js$`},
			input:    "dist/main.js",
			expected: "dist/main.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strip, err := NewHashStripper(tt.patterns)
			if err != nil {
				t.Fatalf("NewHashStripper() error = %v", err)
			}
			if got := strip(tt.input); got != tt.expected {
				t.Errorf("strip(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewHashStripper_NoPatterns(t *testing.T) {
	strip, err := NewHashStripper(nil)
	if err != nil {
		t.Fatalf("NewHashStripper() error = %v", err)
	}
	if strip != nil {
		t.Error("expected nil stripper without patterns")
	}
}

func TestNewHashStripper_InvalidPattern(t *testing.T) {
	if _, err := NewHashStripper([]string{"("}); err == nil {
		t.Error("expected error for invalid regex")
	}
}

func TestCompare(t *testing.T) {
	base := Snapshot{"a.js": 1000, "removed.js": 300, "same.js": 50}
	head := Snapshot{"a.js": 1200, "added.js": 400, "same.js": 50}

	files := Compare(base, head)

	expected := []sizediff.FileSize{
		{Filename: "a.js", Size: 1200, Delta: 200},
		{Filename: "added.js", Size: 400, Delta: 400},
		{Filename: "removed.js", Size: 0, Delta: -300},
		{Filename: "same.js", Size: 50, Delta: 0},
	}
	if len(files) != len(expected) {
		t.Fatalf("Compare() returned %d files, want %d", len(files), len(expected))
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("files[%d] = %+v, want %+v", i, files[i], expected[i])
		}
	}
}
