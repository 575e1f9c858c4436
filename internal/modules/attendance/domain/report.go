package domain

import "time"

type ReportFormat string

const (
	ReportPDF      ReportFormat = "pdf"
	ReportMarkdown ReportFormat = "md"
)

type ReportRow struct {
	Subject  string
	Weeks    int
	Stats    Stats
	Risk     Risk
	Recovery *int
}

type Report struct {
	GeneratedAt time.Time
	Threshold   float64
	Rows        []ReportRow
}

// BuildReport evaluates every subject in collection order.
func BuildReport(c Collection, threshold float64, now time.Time) Report {
	report := Report{GeneratedAt: now, Threshold: threshold, Rows: make([]ReportRow, 0, len(c))}
	for _, s := range c {
		stats := ComputeStats(s)
		report.Rows = append(report.Rows, ReportRow{
			Subject:  s.Name,
			Weeks:    len(s.Weeks),
			Stats:    stats,
			Risk:     ClassifyRisk(stats.Percentage, threshold),
			Recovery: ComputeRecovery(stats.TotalConducted, stats.TotalAttended, threshold),
		})
	}
	return report
}
