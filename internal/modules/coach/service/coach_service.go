package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lockedin/internal/modules/coach/domain"
	coachout "lockedin/internal/modules/coach/port/out"
	"lockedin/internal/platform/logger"

	"github.com/cbroglie/mustache"
	"go.uber.org/zap"
)

const DefaultTimeout = 20 * time.Second

type CoachService struct {
	source  coachout.ContextSource
	advisor coachout.Advisor
	prompt  *mustache.Template
	timeout time.Duration
	log     *zap.Logger
}

// NewCoachService parses promptTemplate, falling back to domain.DefaultPrompt
// when it is blank or does not parse.
func NewCoachService(source coachout.ContextSource, advisor coachout.Advisor, promptTemplate string, timeout time.Duration, log *zap.Logger) *CoachService {
	log = logger.OrNop(log)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	prompt, err := parsePrompt(promptTemplate)
	if err != nil {
		log.Warn("coach prompt template rejected, using default", zap.Error(err))
		prompt, _ = mustache.ParseString(domain.DefaultPrompt)
	}
	return &CoachService{source: source, advisor: advisor, prompt: prompt, timeout: timeout, log: log}
}

func parsePrompt(raw string) (*mustache.Template, error) {
	if strings.TrimSpace(raw) == "" {
		raw = domain.DefaultPrompt
	}
	tmpl, err := mustache.ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return tmpl, nil
}

// Ask only fails on an empty message. Coach failures come back as a
// fallback reply.
func (s *CoachService) Ask(ctx context.Context, message string) (domain.Reply, error) {
	request, err := s.request(ctx, message)
	if err != nil {
		return domain.Reply{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	text, err := s.advisor.Advise(callCtx, request)
	if err == nil && strings.TrimSpace(text) == "" {
		err = domain.ErrEmptyResponse
	}
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			s.log.Warn("coach timed out", zap.Duration("timeout", s.timeout))
		} else {
			s.log.Warn("coach unavailable", zap.Error(err))
		}
		return domain.Reply{Text: domain.FallbackFor(err), Fallback: true}, nil
	}
	return domain.Reply{Text: strings.TrimSpace(text)}, nil
}

func (s *CoachService) Prompt(ctx context.Context, message string) (string, error) {
	request, err := s.request(ctx, message)
	if err != nil {
		return "", err
	}
	return request.Prompt, nil
}

func (s *CoachService) request(ctx context.Context, message string) (domain.Request, error) {
	message, err := domain.NormalizeMessage(message)
	if err != nil {
		return domain.Request{}, err
	}
	bundle, err := s.source.Collect(ctx)
	if err != nil {
		s.log.Warn("coach context incomplete", zap.Error(err))
	}
	prompt, err := s.prompt.Render(bundle.Values(message))
	if err != nil {
		return domain.Request{}, fmt.Errorf("render prompt: %w", err)
	}
	return domain.Request{Prompt: prompt, Message: message, Bundle: bundle}, nil
}
