package out

import (
	"fmt"
	"strconv"

	"lockedin/internal/modules/attendance/domain"
)

var reportHeaders = []string{"Subject", "Weeks", "Conducted", "Attended", "Attendance", "Zone", "Recovery"}

func reportCells(row domain.ReportRow) []string {
	recovery := "-"
	if row.Recovery != nil {
		recovery = strconv.Itoa(*row.Recovery)
	}
	return []string{
		row.Subject,
		strconv.Itoa(row.Weeks),
		strconv.Itoa(row.Stats.TotalConducted),
		strconv.Itoa(row.Stats.TotalAttended),
		fmt.Sprintf("%.2f%%", row.Stats.Percentage),
		string(row.Risk.Zone),
		recovery,
	}
}
