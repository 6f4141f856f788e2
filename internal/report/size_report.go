package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"pr-toolkit/internal/sizediff"
)

// Largest bodies GitHub accepts for a comment and a check run summary
const (
	MaxCommentLength      = 65536
	MaxCheckSummaryLength = 65535
)

// NeutralDifference is the growth percentage from which a check is reported as neutral
const NeutralDifference = 50

const (
	markerPrefix     = "pr-toolkit:size-diff"
	truncationNotice = "\n\n> [!NOTE]\n> This report was truncated because it exceeded the maximum comment length.\n"
)

//go:embed size_report.md
var sizeReportText string

var sizeReportTemplate *template.Template

func init() {
	sizeReportTemplate = template.Must(
		template.New("size-report").Funcs(templateFuncs()).Parse(sizeReportText),
	)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"marker":           Marker,
		"shortSHA":         shortSHA,
		"compressionLabel": compressionLabel,
	}
}

// SizeReportData holds everything the size report template needs
type SizeReportData struct {
	CommentKey  string
	Compression string
	BaseRef     string
	BaseSHA     string
	HeadSHA     string
	Threshold   int64
	Result      *sizediff.Result
}

// Marker returns the hidden HTML comment that identifies a report, so a later run can
// find and update it. Different keys keep reports from separate workflows apart.
func Marker(key string) string {
	if key == "" {
		return fmt.Sprintf("<!-- %s -->", markerPrefix)
	}
	return fmt.Sprintf("<!-- %s:%s -->", markerPrefix, key)
}

// RenderSizeReport renders the comment body for a size report
func RenderSizeReport(data *SizeReportData) (string, error) {
	if data == nil || data.Result == nil {
		return "", fmt.Errorf("no size report data to render")
	}

	var buf bytes.Buffer
	if err := sizeReportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute size report template: %w", err)
	}

	return Truncate(buf.String(), MaxCommentLength), nil
}

// CheckConclusion returns "neutral" when any file grew by NeutralDifference percent or more,
// otherwise "success"
func CheckConclusion(result *sizediff.Result) string {
	for _, info := range result.FilesInfo {
		if info.Difference >= NeutralDifference {
			return "neutral"
		}
	}
	return "success"
}

// CheckTitle summarizes a report in one line for the check run title
func CheckTitle(result *sizediff.Result) string {
	if result.TotalDeltaText != "" {
		return result.TotalDeltaText
	}

	changed := 0
	for _, info := range result.FilesInfo {
		if !info.IsUnchanged {
			changed++
		}
	}
	if changed == 1 {
		return "1 file changed"
	}
	return fmt.Sprintf("%d files changed", changed)
}

// Truncate cuts body so that, with a truncation notice appended, it fits in limit bytes
func Truncate(body string, limit int) string {
	if len(body) <= limit {
		return body
	}

	cut := limit - len(truncationNotice)
	if cut < 0 {
		// No room for the notice
		cut = max(limit, 0)
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		return body[:cut]
	}
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return strings.TrimRight(body[:cut], "\n") + truncationNotice
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func compressionLabel(compression string) string {
	switch compression {
	case "brotli":
		return "brotli compressed"
	case "none":
		return "uncompressed"
	default:
		return "gzip compressed"
	}
}
