package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lockedin/internal/modules/attendance/domain"
	attendanceout "lockedin/internal/modules/attendance/port/out"
	"lockedin/internal/platform/markdown"
)

const (
	reportStartMarker = "<!-- lockedin:attendance:start -->"
	reportEndMarker   = "<!-- lockedin:attendance:end -->"
)

// MarkdownReportWriter keeps one attendance.md up to date. Only the managed
// block is rewritten, so notes written around it survive.
type MarkdownReportWriter struct {
	dir string
}

func NewMarkdownReportWriter(dir string) attendanceout.ReportWriter {
	return &MarkdownReportWriter{dir: dir}
}

func (w *MarkdownReportWriter) Format() domain.ReportFormat {
	return domain.ReportMarkdown
}

func (w *MarkdownReportWriter) Write(_ context.Context, report domain.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(w.dir, "attendance.md")
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read markdown report: %w", err)
	}
	body := string(existing)
	if strings.TrimSpace(body) == "" {
		body = "# Attendance\n"
	}

	rows := make([][]string, 0, len(report.Rows))
	var advice []string
	for _, row := range report.Rows {
		rows = append(rows, reportCells(row))
		if row.Recovery != nil {
			advice = append(advice, fmt.Sprintf("- **%s**: attend the next %d class(es) without absence to reach %.0f%%.", row.Subject, *row.Recovery, report.Threshold))
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "_Updated %s. Minimum attendance %.0f%%._\n\n", report.GeneratedAt.Format("2006-01-02 15:04"), report.Threshold)
	sb.WriteString(markdown.Table(reportHeaders, rows))
	if len(advice) > 0 {
		sb.WriteString("\n### Recovery\n\n")
		sb.WriteString(strings.Join(advice, "\n"))
		sb.WriteString("\n")
	}

	updated := markdown.ReplaceManagedBlock(body, reportStartMarker, reportEndMarker, strings.TrimRight(sb.String(), "\n"))
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return "", fmt.Errorf("write markdown report: %w", err)
	}
	return path, nil
}
