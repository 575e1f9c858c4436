package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	coachrpc "lockedin/internal/modules/coach/adapter/out/rpc"
	"lockedin/internal/modules/coach/domain"
	coachout "lockedin/internal/modules/coach/port/out"
	"lockedin/internal/platform/logger"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"go.uber.org/zap"
)

const defaultStartTimeout = 3 * time.Second

// GRPCAdvisor starts the coach plugin binary per question and kills it after
// the answer.
type GRPCAdvisor struct {
	binary string
	log    *zap.Logger
}

func NewGRPCAdvisor(binary string, log *zap.Logger) coachout.Advisor {
	return &GRPCAdvisor{binary: binary, log: logger.OrNop(log)}
}

func (a *GRPCAdvisor) Advise(ctx context.Context, request domain.Request) (string, error) {
	if a.binary == "" {
		return "", domain.ErrCoachOffline
	}
	if _, err := os.Stat(a.binary); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCoachOffline, err)
	}
	client, closeFn, err := a.connect()
	if err != nil {
		return "", err
	}
	defer closeFn()

	response, err := client.Advise(ctx, toRPC(request))
	if err != nil {
		return "", fmt.Errorf("advise: %w", err)
	}
	return response.Response, nil
}

func (a *GRPCAdvisor) connect() (coachrpc.CoachClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  coachrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          coachrpc.PluginMap(nil),
		Cmd:              exec.Command(a.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "coach",
			Output: zap.NewStdLog(a.log.Named("coach-plugin")).Writer(),
			Level:  hclog.Warn,
		}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start coach plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(coachrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense coach plugin: %w", err)
	}
	typed, ok := raw.(coachrpc.CoachClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("coach rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func toRPC(request domain.Request) *coachrpc.AdviseRequest {
	b := request.Bundle
	out := &coachrpc.AdviseRequest{
		Message:    request.Message,
		Prompt:     request.Prompt,
		Attendance: make([]coachrpc.SubjectContext, 0, len(b.Subjects)),
		Planner: coachrpc.PlannerContext{
			TotalTasks:     b.TasksTotal,
			CompletedTasks: b.TasksDone,
			CompletionRate: b.CompletionRate,
		},
		Study: coachrpc.StudyContext{
			SessionsToday: b.SessionsToday,
			TotalMinutes:  b.TotalMinutes,
			CurrentStreak: b.CurrentStreak,
		},
	}
	if b.Eligibility != nil {
		out.Eligibility = &coachrpc.EligibilityContext{
			Schema:     b.Eligibility.Schema,
			Total:      b.Eligibility.Total,
			Percentage: b.Eligibility.Percentage,
			Grade:      b.Eligibility.Grade,
		}
	}
	for _, s := range b.Subjects {
		out.Attendance = append(out.Attendance, coachrpc.SubjectContext{
			Name:           s.Name,
			Percentage:     s.Percentage,
			TotalConducted: s.Conducted,
			TotalAttended:  s.Attended,
			RiskZone:       s.Zone,
			Recovery:       s.Recovery,
		})
	}
	return out
}
