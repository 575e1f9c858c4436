package bootstrap

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	attendanceinadapter "lockedin/internal/modules/attendance/adapter/in"
	attendanceoutadapter "lockedin/internal/modules/attendance/adapter/out"
	attendanceservice "lockedin/internal/modules/attendance/service"
	attendanceusecase "lockedin/internal/modules/attendance/usecase"
	coachinadapter "lockedin/internal/modules/coach/adapter/in"
	coachoutadapter "lockedin/internal/modules/coach/adapter/out"
	coachservice "lockedin/internal/modules/coach/service"
	coachusecase "lockedin/internal/modules/coach/usecase"
	eligibilityinadapter "lockedin/internal/modules/eligibility/adapter/in"
	eligibilityoutadapter "lockedin/internal/modules/eligibility/adapter/out"
	eligibilityservice "lockedin/internal/modules/eligibility/service"
	eligibilityusecase "lockedin/internal/modules/eligibility/usecase"
	plannerinadapter "lockedin/internal/modules/planner/adapter/in"
	planneroutadapter "lockedin/internal/modules/planner/adapter/out"
	plannerservice "lockedin/internal/modules/planner/service"
	plannerusecase "lockedin/internal/modules/planner/usecase"
	progressinadapter "lockedin/internal/modules/progress/adapter/in"
	progressoutadapter "lockedin/internal/modules/progress/adapter/out"
	progressservice "lockedin/internal/modules/progress/service"
	progressusecase "lockedin/internal/modules/progress/usecase"
	timerinadapter "lockedin/internal/modules/timer/adapter/in"
	timeroutadapter "lockedin/internal/modules/timer/adapter/out"
	timerservice "lockedin/internal/modules/timer/service"
	timerusecase "lockedin/internal/modules/timer/usecase"
	"lockedin/internal/platform/clock"
	"lockedin/internal/platform/config"
	"lockedin/internal/platform/id"
	"lockedin/internal/platform/kvstore"
	"lockedin/internal/platform/logger"
	"lockedin/internal/platform/notify"
	uiapp "lockedin/internal/ui/app"
)

type App struct {
	TimerCLI       timerinadapter.CLIHandler
	AttendanceCLI  attendanceinadapter.CLIHandler
	PlannerCLI     plannerinadapter.CLIHandler
	ProgressCLI    progressinadapter.CLIHandler
	EligibilityCLI eligibilityinadapter.CLIHandler
	CoachCLI       coachinadapter.CLIHandler

	Store kvstore.Store
	Clock clock.Clock
	Log   *zap.Logger
	// Warnings lists degraded startup conditions, such as running on the
	// in-memory store.
	Warnings []string
}

func New(cfg config.Config) (*App, error) {
	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(cfg, log)
}

// NewWithLogger wires every module against the configured store.
func NewWithLogger(cfg config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	clk := clock.SystemClock{}
	ids := id.UUID{}
	notifier := notify.NewDesktop(cfg.Notify.Enabled, log)

	store, warnings := openStore(cfg, log)

	progressUC := progressusecase.NewInteractor(
		progressservice.NewProgressService(clk, progressoutadapter.NewKVStateStore(store), notifier, log),
		clk,
	)

	timerUC := timerusecase.NewInteractor(timerservice.NewTimerService(timerservice.Dependencies{
		Clock:          clk,
		IDs:            ids,
		Store:          timeroutadapter.NewKVStateStore(store),
		Ticks:          timeroutadapter.NewTickerSource(),
		Recorder:       timeroutadapter.NewProgressRecorder(progressUC),
		Notes:          timeroutadapter.NewVaultNoteStore(cfg.NotesDir),
		Notifier:       notifier,
		Logger:         log,
		DefaultMinutes: cfg.Timer.DefaultMinutes,
	}), clk, cfg.Timer.Presets)

	attendanceUC := attendanceusecase.NewInteractor(attendanceservice.NewAttendanceService(
		clk,
		ids,
		attendanceoutadapter.NewKVStore(store),
		cfg.Attendance.Threshold,
		log,
		attendanceoutadapter.NewPDFReportWriter(cfg.ReportsDir),
		attendanceoutadapter.NewMarkdownReportWriter(cfg.ReportsDir),
	))

	plannerUC := plannerusecase.NewInteractor(plannerservice.NewPlannerService(
		clk,
		ids,
		planneroutadapter.NewKVStore(store),
		planneroutadapter.NewProgressBridge(progressUC),
		log,
	))

	eligibilityUC := eligibilityusecase.NewInteractor(eligibilityservice.NewEligibilityService(
		clk,
		eligibilityoutadapter.NewKVResultStore(store),
	))

	coachUC := coachusecase.NewInteractor(coachservice.NewCoachService(
		coachoutadapter.NewModuleContextSource(attendanceUC, plannerUC, eligibilityUC, progressUC),
		coachoutadapter.NewGRPCAdvisor(cfg.Coach.PluginPath, log),
		cfg.Coach.PromptTemplate,
		time.Duration(cfg.Coach.TimeoutSeconds)*time.Second,
		log,
	))

	return &App{
		TimerCLI:       timerinadapter.NewCLIHandler(timerUC),
		AttendanceCLI:  attendanceinadapter.NewCLIHandler(attendanceUC),
		PlannerCLI:     plannerinadapter.NewCLIHandler(plannerUC),
		ProgressCLI:    progressinadapter.NewCLIHandler(progressUC),
		EligibilityCLI: eligibilityinadapter.NewCLIHandler(eligibilityUC),
		CoachCLI:       coachinadapter.NewCLIHandler(coachUC),
		Store:          store,
		Clock:          clk,
		Log:            log,
		Warnings:       warnings,
	}, nil
}

// openStore falls back to memory when the configured backend cannot be
// opened; the app keeps working but nothing survives the process.
func openStore(cfg config.Config, log *zap.Logger) (kvstore.Store, []string) {
	var (
		store kvstore.Store
		err   error
	)
	switch cfg.Store.Backend {
	case config.BackendRedis:
		store, err = kvstore.NewRedisStore(kvstore.RedisOptions{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
			Prefix:   cfg.Store.KeyPrefix,
		})
	default:
		store, err = kvstore.NewSQLiteStore(cfg.DBPath)
	}
	if err == nil {
		return store, nil
	}
	log.Warn("store unavailable, using memory", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	return kvstore.NewMemoryStore(), []string{fmt.Sprintf("%s store unavailable (%v); changes will not be saved", cfg.Store.Backend, err)}
}

func (a *App) Close() error {
	_ = a.Log.Sync()
	return a.Store.Close()
}

func (a *App) ports() uiapp.Ports {
	return uiapp.Ports{
		Timer:       a.TimerCLI,
		Attendance:  a.AttendanceCLI,
		Planner:     a.PlannerCLI,
		Progress:    a.ProgressCLI,
		Eligibility: a.EligibilityCLI,
		Coach:       a.CoachCLI,
	}
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, app.ports())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// RunMini shows the one-line timer window.
func RunMini(ctx context.Context, app *App) error {
	program := tea.NewProgram(uiapp.NewMini(ctx, app.TimerCLI), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
