package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "lockedin/internal/modules/timer/dto"
	"lockedin/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context) (timerdto.Snapshot, error)
	Pause(ctx context.Context) (timerdto.Snapshot, error)
	Reset(ctx context.Context, minutes int) (timerdto.Snapshot, error)
	Preset(ctx context.Context, minutes int) (timerdto.Snapshot, error)
	Status(ctx context.Context) (timerdto.Snapshot, error)
	Watch(ctx context.Context) <-chan timerdto.Snapshot
	Presets() []int
}

// ─── messages ────────────────────────────────────────────────────────────────

// SnapshotMsg carries the result of a timer action or a watched update.
type SnapshotMsg struct {
	Snapshot timerdto.Snapshot
	Err      error
	// Watched is set for updates pushed by the engine rather than requested.
	Watched bool
}

type watchClosedMsg struct{}

// ResyncTickMsg must reach the timer view whichever tab is active.
type ResyncTickMsg struct{}

// resyncEvery picks up changes made by other processes sharing the store.
const resyncEvery = 5 * time.Second

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    TimerPort
	updates <-chan timerdto.Snapshot
	snap    timerdto.Snapshot
	bar     progress.Model
	presets []int
	compact bool
	width   int
	height  int
}

// New subscribes to the timer for the lifetime of ctx.
func New(ctx context.Context, port TimerPort) Model {
	bar := progress.New(
		progress.WithGradient(string(theme.Lavender), string(theme.Green)),
		progress.WithoutPercentage(),
	)
	return Model{
		port:    port,
		updates: port.Watch(ctx),
		bar:     bar,
		presets: port.Presets(),
	}
}

// NewCompact renders a single line for the mini window.
func NewCompact(ctx context.Context, port TimerPort) Model {
	m := New(ctx, port)
	m.compact = true
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Resync(), m.listen(), scheduleResync())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-8, 60))

	case ResyncTickMsg:
		return m, tea.Batch(m.Resync(), scheduleResync())

	case SnapshotMsg:
		if msg.Err == nil {
			m.snap = msg.Snapshot
		}
		if msg.Watched {
			return m, m.listen()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if m.snap.Running {
				return m, m.Pause()
			}
			return m, m.Start()
		case "r":
			return m, m.Reset(0)
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.presets) {
				return m, m.Preset(m.presets[idx])
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.compact {
		return m.compactView()
	}
	s := m.snap
	clock := lipgloss.NewStyle().Foreground(m.clockColor()).Bold(true).Padding(1, 4).
		BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Surface1).
		Render(displayClock(s))

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Label) + "\n\n")
	sb.WriteString(clock + "\n\n")
	sb.WriteString(m.bar.ViewAs(s.Progress) + "\n\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("sessions: %d  streak: %d  preset: %dm",
		s.SessionCount, s.ConsecutiveSessions, s.PresetMinutes)) + "\n")
	sb.WriteString(m.renderPresets() + "\n\n")
	sb.WriteString(theme.Muted.Render("space: start/pause  r: reset  1-4: preset"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(sb.String()))
}

// Snapshot is the latest state seen by the view.
func (m Model) Snapshot() timerdto.Snapshot { return m.snap }

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) Start() tea.Cmd {
	return m.call(func(ctx context.Context) (timerdto.Snapshot, error) { return m.port.Start(ctx) })
}

func (m Model) Pause() tea.Cmd {
	return m.call(func(ctx context.Context) (timerdto.Snapshot, error) { return m.port.Pause(ctx) })
}

func (m Model) Reset(minutes int) tea.Cmd {
	return m.call(func(ctx context.Context) (timerdto.Snapshot, error) { return m.port.Reset(ctx, minutes) })
}

func (m Model) Preset(minutes int) tea.Cmd {
	return m.call(func(ctx context.Context) (timerdto.Snapshot, error) { return m.port.Preset(ctx, minutes) })
}

// Resync reloads the shared timer state, e.g. after the terminal regains focus.
func (m Model) Resync() tea.Cmd {
	return m.call(func(ctx context.Context) (timerdto.Snapshot, error) { return m.port.Status(ctx) })
}

func (m Model) call(fn func(context.Context) (timerdto.Snapshot, error)) tea.Cmd {
	return func() tea.Msg {
		snap, err := fn(context.Background())
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

func (m Model) listen() tea.Cmd {
	ch := m.updates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return SnapshotMsg{Snapshot: snap, Watched: true}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func scheduleResync() tea.Cmd {
	return tea.Tick(resyncEvery, func(time.Time) tea.Msg { return ResyncTickMsg{} })
}

func (m Model) compactView() string {
	s := m.snap
	dot := theme.Muted.Render("○")
	if s.Running {
		dot = theme.Good.Render("●")
	}
	bar := m.bar
	bar.Width = 20
	return fmt.Sprintf("%s %s %s %s", dot,
		lipgloss.NewStyle().Foreground(m.clockColor()).Bold(true).Render(displayClock(s)),
		bar.ViewAs(s.Progress), theme.Muted.Render(s.Label))
}

func (m Model) clockColor() lipgloss.Color {
	switch {
	case m.snap.Status == "complete":
		return theme.Green
	case m.snap.Running:
		return theme.Peach
	default:
		return theme.Text
	}
}

func (m Model) renderPresets() string {
	parts := make([]string, 0, len(m.presets))
	for i, p := range m.presets {
		label := fmt.Sprintf("%d:%dm", i+1, p)
		if p == m.snap.PresetMinutes {
			parts = append(parts, theme.Hot.Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func displayClock(s timerdto.Snapshot) string {
	if s.Clock == "" {
		return "--:--"
	}
	return s.Clock
}
