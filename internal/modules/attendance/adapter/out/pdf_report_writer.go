package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"lockedin/internal/modules/attendance/domain"
	attendanceout "lockedin/internal/modules/attendance/port/out"
)

// PDFReportWriter renders the attendance table into a dated A4 PDF.
type PDFReportWriter struct {
	dir string
}

func NewPDFReportWriter(dir string) attendanceout.ReportWriter {
	return &PDFReportWriter{dir: dir}
}

func (w *PDFReportWriter) Format() domain.ReportFormat {
	return domain.ReportPDF
}

func (w *PDFReportWriter) Write(_ context.Context, report domain.Report) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "ATTENDANCE REPORT", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	subtitle := fmt.Sprintf("Generated %s, minimum attendance %.0f%%", report.GeneratedAt.Format("2006-01-02 15:04"), report.Threshold)
	pdf.CellFormat(0, 6, subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(reportHeaders))
	for _, header := range reportHeaders {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Rows {
		for _, cell := range reportCells(row) {
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(report.Rows) == 0 {
		pdf.CellFormat(190, 7, "No subjects tracked yet.", "1", 1, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("attendance-%s.pdf", report.GeneratedAt.Format("2006-01-02")))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}
