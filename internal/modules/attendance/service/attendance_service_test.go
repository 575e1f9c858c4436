package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lockedin/internal/modules/attendance/domain"
	"lockedin/internal/modules/attendance/service"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type flakyStore struct {
	saved   domain.Collection
	saveErr error
}

func (f *flakyStore) Load(context.Context) (domain.Collection, error) {
	return f.saved, nil
}

func (f *flakyStore) Save(_ context.Context, c domain.Collection) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = c
	return nil
}

func newService(store *flakyStore, threshold float64) *service.AttendanceService {
	return service.NewAttendanceService(
		fixedClock{now: time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)},
		&seqID{},
		store,
		threshold,
		nil,
	)
}

func TestThresholdOutsideRiskBandFallsBackToDefault(t *testing.T) {
	t.Parallel()
	cases := map[float64]float64{
		0:   domain.DefaultThreshold,
		-5:  domain.DefaultThreshold,
		85:  domain.DefaultThreshold,
		99:  domain.DefaultThreshold,
		80:  80,
		60:  60,
		75:  75,
		100: domain.DefaultThreshold,
	}
	for in, want := range cases {
		if got := newService(&flakyStore{}, in).Threshold(); got != want {
			t.Fatalf("threshold %v: expected %v, got %v", in, want, got)
		}
	}
}

func TestFailedSaveIsReturnedAndNothingPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	diskFull := errors.New("disk full")
	store := &flakyStore{saveErr: diskFull}
	svc := newService(store, 75)

	if _, err := svc.AddSubject(ctx, "Physics"); !errors.Is(err, diskFull) {
		t.Fatalf("expected the save failure to reach the caller, got %v", err)
	}
	subjects, err := svc.Subjects(ctx)
	if err != nil {
		t.Fatalf("subjects: %v", err)
	}
	if len(subjects) != 0 {
		t.Fatalf("expected nothing persisted after a failed save, got %+v", subjects)
	}

	store.saveErr = nil
	if _, err := svc.AddSubject(ctx, "Physics"); err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
}
