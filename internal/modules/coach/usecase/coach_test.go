package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lockedin/internal/modules/coach/domain"
	"lockedin/internal/modules/coach/service"
	"lockedin/internal/modules/coach/usecase"
)

type staticSource struct {
	bundle domain.Bundle
	err    error
}

func (s staticSource) Collect(context.Context) (domain.Bundle, error) {
	return s.bundle, s.err
}

type fakeAdvisor struct {
	reply    string
	err      error
	block    bool
	requests []domain.Request
}

func (a *fakeAdvisor) Advise(ctx context.Context, request domain.Request) (string, error) {
	a.requests = append(a.requests, request)
	if a.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return a.reply, a.err
}

var physics = domain.Bundle{
	Subjects:       []domain.Subject{{Name: "Physics", Percentage: 50, Conducted: 10, Attended: 5, Zone: "danger", Recovery: 10}},
	TasksTotal:     2,
	CompletionRate: 0,
	SessionsToday:  3,
}

func TestAskSendsRenderedPromptAndBundle(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{reply: "  Go to every Physics class.  "}
	uc := usecase.NewInteractor(service.NewCoachService(staticSource{bundle: physics}, advisor, "", time.Second, nil))

	reply, err := uc.Ask(context.Background(), " how do I recover? ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply.Fallback || reply.Text != "Go to every Physics class." {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(advisor.requests) != 1 {
		t.Fatalf("expected one advisor call, got %d", len(advisor.requests))
	}
	request := advisor.requests[0]
	if request.Message != "how do I recover?" || request.Bundle.SessionsToday != 3 {
		t.Fatalf("unexpected request: %+v", request)
	}
	for _, want := range []string{
		"- Physics: 50% (danger), needs 10 more classes",
		"Tasks: 0 of 2 done (0%).",
		"Focus sessions today: 3",
		"Student: how do I recover?",
	} {
		if !strings.Contains(request.Prompt, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, request.Prompt)
		}
	}
	if strings.Contains(request.Prompt, "Internal marks") {
		t.Fatalf("expected no eligibility line without a result, got:\n%s", request.Prompt)
	}
}

func TestAskFailuresFallBack(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		advisor *fakeAdvisor
		want    string
	}{
		{"offline", &fakeAdvisor{err: domain.ErrCoachOffline}, domain.OfflineReply},
		{"rpc error", &fakeAdvisor{err: errors.New("transport closed")}, domain.UnavailableReply},
		{"blank answer", &fakeAdvisor{reply: "   "}, domain.EmptyReply},
		{"timeout", &fakeAdvisor{block: true}, domain.UnavailableReply},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			uc := usecase.NewInteractor(service.NewCoachService(staticSource{bundle: physics}, tc.advisor, "", 20*time.Millisecond, nil))
			reply, err := uc.Ask(context.Background(), "help")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !reply.Fallback || reply.Text != tc.want {
				t.Fatalf("expected fallback %q, got %+v", tc.want, reply)
			}
		})
	}
}

func TestAskRejectsEmptyMessage(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{reply: "unused"}
	uc := usecase.NewInteractor(service.NewCoachService(staticSource{}, advisor, "", time.Second, nil))
	if _, err := uc.Ask(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("expected empty message error, got %v", err)
	}
	if len(advisor.requests) != 0 {
		t.Fatalf("expected advisor not to be called")
	}
}

func TestPartialContextStillAsks(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{reply: "ok"}
	source := staticSource{bundle: physics, err: errors.New("planner: store unavailable")}
	uc := usecase.NewInteractor(service.NewCoachService(source, advisor, "", time.Second, nil))

	reply, err := uc.Ask(context.Background(), "help")
	if err != nil || reply.Text != "ok" {
		t.Fatalf("expected answer despite partial context, got %+v %v", reply, err)
	}
}

func TestCustomAndBrokenPromptTemplates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	custom := usecase.NewInteractor(service.NewCoachService(staticSource{bundle: physics}, &fakeAdvisor{}, "Q={{{message}}} S={{sessions_today}}", time.Second, nil))
	prompt, err := custom.Prompt(ctx, "why?")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if prompt != "Q=why? S=3" {
		t.Fatalf("unexpected custom prompt %q", prompt)
	}

	broken := usecase.NewInteractor(service.NewCoachService(staticSource{bundle: physics}, &fakeAdvisor{}, "{{#unclosed}}", time.Second, nil))
	prompt, err = broken.Prompt(ctx, "why?")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !strings.Contains(prompt, "Student: why?") {
		t.Fatalf("expected default prompt after a broken template, got %q", prompt)
	}
}
