package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	coachrpc "lockedin/internal/modules/coach/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// server answers offline from the context bundle alone.
type server struct{}

func (s *server) Advise(_ context.Context, in *coachrpc.AdviseRequest) (*coachrpc.AdviseResponse, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("empty message")
	}
	return &coachrpc.AdviseResponse{Response: advise(in)}, nil
}

func advise(in *coachrpc.AdviseRequest) string {
	var lines []string

	risky := make([]coachrpc.SubjectContext, 0)
	for _, subject := range in.Attendance {
		if subject.RiskZone != "safe" {
			risky = append(risky, subject)
		}
	}
	sort.Slice(risky, func(i, j int) bool { return risky[i].Percentage < risky[j].Percentage })
	for _, subject := range risky {
		line := fmt.Sprintf("%s is at %.2f%% (%s).", subject.Name, subject.Percentage, subject.RiskZone)
		if subject.Recovery > 0 {
			line += fmt.Sprintf(" Attend the next %d classes in a row to get back to the threshold.", subject.Recovery)
		}
		lines = append(lines, line)
	}
	if len(in.Attendance) > 0 && len(risky) == 0 {
		lines = append(lines, "Attendance looks safe across all subjects.")
	}

	if e := in.Eligibility; e != nil {
		if e.Grade == "Not up to mark" {
			lines = append(lines, fmt.Sprintf("Internal marks are at %.2f%%. Put extra time into the next assessment.", e.Percentage))
		} else {
			lines = append(lines, fmt.Sprintf("Internal marks are at %.2f%%, grade %s. Keep it there.", e.Percentage, e.Grade))
		}
	}

	switch open := in.Planner.TotalTasks - in.Planner.CompletedTasks; {
	case in.Planner.TotalTasks == 0:
		lines = append(lines, "Add your upcoming deadlines to the planner so nothing slips.")
	case open > 0 && in.Planner.CompletionRate < 50:
		lines = append(lines, fmt.Sprintf("You have %d open tasks. Pick the closest deadline and finish it first.", open))
	case open > 0:
		lines = append(lines, fmt.Sprintf("%d tasks left, %d%% done. Nice pace.", open, in.Planner.CompletionRate))
	}

	if in.Study.SessionsToday == 0 {
		lines = append(lines, "Start a 25 minute focus session now.")
	} else {
		lines = append(lines, fmt.Sprintf("%d focus sessions today. Take a short break before the next one.", in.Study.SessionsToday))
	}
	return strings.Join(lines, "\n")
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: coachrpc.HandshakeConfig,
		Plugins:         coachrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
