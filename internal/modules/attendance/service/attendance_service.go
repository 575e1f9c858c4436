package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"lockedin/internal/modules/attendance/domain"
	attendanceout "lockedin/internal/modules/attendance/port/out"
	"lockedin/internal/platform/clock"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/id"
	"lockedin/internal/platform/logger"
)

type AttendanceService struct {
	mu        sync.Mutex
	clock     clock.Clock
	idGen     id.Generator
	store     attendanceout.Store
	writers   map[domain.ReportFormat]attendanceout.ReportWriter
	threshold float64
	log       *zap.Logger
}

func NewAttendanceService(clk clock.Clock, idGen id.Generator, store attendanceout.Store, threshold float64, log *zap.Logger, writers ...attendanceout.ReportWriter) *AttendanceService {
	// Above the safe boundary the at-risk band would be empty.
	if threshold <= 0 || threshold > domain.SafeBoundary {
		threshold = domain.DefaultThreshold
	}
	byFormat := make(map[domain.ReportFormat]attendanceout.ReportWriter, len(writers))
	for _, w := range writers {
		byFormat[w.Format()] = w
	}
	return &AttendanceService{
		clock:     clk,
		idGen:     idGen,
		store:     store,
		writers:   byFormat,
		threshold: threshold,
		log:       logger.OrNop(log).Named("attendance"),
	}
}

func (s *AttendanceService) Threshold() float64 {
	return s.threshold
}

func (s *AttendanceService) Subjects(ctx context.Context) (domain.Collection, error) {
	return s.store.Load(ctx)
}

func (s *AttendanceService) AddSubject(ctx context.Context, name string) (domain.Subject, error) {
	var added domain.Subject
	err := s.update(ctx, func(c domain.Collection) (domain.Collection, error) {
		next, subject, err := c.AddSubject(s.idGen.New(), name)
		added = subject
		return next, err
	})
	if err == nil {
		s.log.Info("subject_added", zap.String("subject", added.Name))
	}
	return added, err
}

func (s *AttendanceService) DeleteSubject(ctx context.Context, ref string) error {
	return s.update(ctx, func(c domain.Collection) (domain.Collection, error) {
		subject, ok := c.FindByName(ref)
		if !ok {
			return c, fmt.Errorf("%w: %s", domain.ErrSubjectNotFound, ref)
		}
		return c.RemoveSubject(subject.ID)
	})
}

func (s *AttendanceService) AddWeek(ctx context.Context, ref string) (domain.Subject, error) {
	return s.editSubject(ctx, ref, func(subject domain.Subject) (domain.Subject, error) {
		return subject.AddWeek(s.idGen.New()), nil
	})
}

func (s *AttendanceService) DeleteWeek(ctx context.Context, ref string, number int) (domain.Subject, error) {
	return s.editSubject(ctx, ref, func(subject domain.Subject) (domain.Subject, error) {
		week, ok := subject.WeekAt(number)
		if !ok {
			return subject, fmt.Errorf("%w: week %d", domain.ErrWeekNotFound, number)
		}
		return subject.RemoveWeek(week.ID)
	})
}

func (s *AttendanceService) UpdateWeek(ctx context.Context, ref string, number int, field domain.Field, value int) (domain.Subject, error) {
	return s.editSubject(ctx, ref, func(subject domain.Subject) (domain.Subject, error) {
		week, ok := subject.WeekAt(number)
		if !ok {
			return subject, fmt.Errorf("%w: week %d", domain.ErrWeekNotFound, number)
		}
		return subject.UpdateWeek(week.ID, field, value)
	})
}

// Report renders the current collection with the writer for format.
func (s *AttendanceService) Report(ctx context.Context, format domain.ReportFormat) (string, domain.Report, error) {
	writer, ok := s.writers[format]
	if !ok {
		return "", domain.Report{}, fmt.Errorf("%w: unsupported report format %q", apperrors.ErrInvalidInput, format)
	}
	subjects, err := s.store.Load(ctx)
	if err != nil {
		return "", domain.Report{}, err
	}
	report := domain.BuildReport(subjects, s.threshold, s.clock.Now())
	path, err := writer.Write(ctx, report)
	if err != nil {
		return "", domain.Report{}, fmt.Errorf("write %s report: %w", format, err)
	}
	s.log.Info("report_written", zap.String("format", string(format)), zap.String("path", path))
	return path, report, nil
}

func (s *AttendanceService) editSubject(ctx context.Context, ref string, fn func(domain.Subject) (domain.Subject, error)) (domain.Subject, error) {
	var edited domain.Subject
	err := s.update(ctx, func(c domain.Collection) (domain.Collection, error) {
		subject, ok := c.FindByName(ref)
		if !ok {
			return c, fmt.Errorf("%w: %s", domain.ErrSubjectNotFound, ref)
		}
		next, err := fn(subject)
		if err != nil {
			return c, err
		}
		edited = next
		return c.Replace(next)
	})
	return edited, err
}

func (s *AttendanceService) update(ctx context.Context, fn func(domain.Collection) (domain.Collection, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save attendance: %w", err)
	}
	return nil
}
