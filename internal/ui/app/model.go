package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	attendancedto "lockedin/internal/modules/attendance/dto"
	coachdto "lockedin/internal/modules/coach/dto"
	eligibilitydto "lockedin/internal/modules/eligibility/dto"
	plannerdto "lockedin/internal/modules/planner/dto"
	"lockedin/internal/ui/components"
	"lockedin/internal/ui/theme"
	attendanceview "lockedin/internal/ui/views/attendance"
	coachview "lockedin/internal/ui/views/coach"
	plannerview "lockedin/internal/ui/views/planner"
	progressview "lockedin/internal/ui/views/progress"
	timerview "lockedin/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type attendancePort interface {
	attendanceview.AttendancePort
	AddSubject(ctx context.Context, name string) (attendancedto.SubjectView, error)
	DeleteSubject(ctx context.Context, subject string) error
	SetWeek(ctx context.Context, subject string, week int, field, value string) (attendancedto.SubjectView, error)
	Report(ctx context.Context, format string) (attendancedto.ReportOutput, error)
}

type plannerPort interface {
	plannerview.PlannerPort
	AddTask(ctx context.Context, text, due, priority string) (plannerdto.TaskOutcome, error)
	EditTask(ctx context.Context, ref, text string) (plannerdto.TaskView, error)
	AddExam(ctx context.Context, name, date string) (plannerdto.ExamView, error)
	DeleteExam(ctx context.Context, ref string) error
	AddLab(ctx context.Context, name, due, link, status string) (plannerdto.LabView, error)
	SetLabStatus(ctx context.Context, ref, status string) (plannerdto.LabView, error)
	DeleteLab(ctx context.Context, ref string) error
}

type eligibilityPort interface {
	Evaluate(ctx context.Context, input eligibilitydto.EvaluateInput) (eligibilitydto.Result, error)
}

type coachPort interface {
	Ask(ctx context.Context, message string) (coachdto.Reply, error)
}

// Ports groups everything the dashboard talks to.
type Ports struct {
	Timer       timerview.TimerPort
	Attendance  attendancePort
	Planner     plannerPort
	Progress    progressview.ProgressPort
	Eligibility eligibilityPort
	Coach       coachPort
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabAttendance
	tabPlanner
	tabProgress
	tabCoach
	tabCount
)

var tabLabels = [tabCount]string{
	"Focus", "Attendance", "Planner", "Progress", "Coach",
}

// ─── async messages ───────────────────────────────────────────────────────────

// actionDoneMsg is the result of a palette command. reload lists the tabs
// whose data changed.
type actionDoneMsg struct {
	status string
	err    error
	reload []tabID
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Preset  key.Binding
	Done    key.Binding
	Week    key.Binding
	Ask     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause timer")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Preset:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "timer preset")),
		Done:    key.NewBinding(key.WithKeys("x"), key.WithHelp("space/x", "toggle task")),
		Week:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w/W", "add/drop week")),
		Ask:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "ask coach")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Palette, k.Help, k.Quit},
		{k.Toggle, k.Reset, k.Preset},
		{k.Done, k.Week, k.Ask},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the status bar,
// the help overlay and the command palette; rendering is delegated to the
// sub-views.
type Model struct {
	ports Ports

	timerView      timerview.Model
	attendanceView attendanceview.Model
	plannerView    plannerview.Model
	progressView   progressview.Model
	coachView      coachview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel builds the dashboard. ctx bounds the timer subscription.
func NewModel(ctx context.Context, ports Ports) Model {
	return Model{
		ports:          ports,
		timerView:      timerview.New(ctx, ports.Timer),
		attendanceView: attendanceview.New(ports.Attendance),
		plannerView:    plannerview.New(ports.Planner),
		progressView:   progressview.New(ports.Progress),
		coachView:      coachview.New(ports.Coach),
		activeTab:      tabTimer,
		keys:           defaultKeys(),
		help:           help.New(),
		palette:        components.NewPalette(),
		status:         "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.attendanceView.Init(),
		m.plannerView.Init(),
		m.progressView.Init(),
		m.coachView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Focus comes back after suspend or after another surface touched the
	// timer, so the countdown is recomputed from the stored deadline.
	case tea.FocusMsg:
		return m, tea.Batch(m.timerView.Resync(), m.progressView.Reload())

	case timerview.ResyncTickMsg:
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case timerview.SnapshotMsg:
		var cmds []tea.Cmd
		switch {
		case msg.Err != nil:
			m.status = "timer: " + msg.Err.Error()
		case msg.Snapshot.Warning != "":
			m.status = msg.Snapshot.Warning
		case msg.Snapshot.Completed:
			m.status = theme.Good.Render("Session complete! Take a break.")
			cmds = append(cmds, m.progressView.Reload())
		}
		m.timerView, cmd = m.timerView.Update(msg)
		return m, tea.Batch(append(cmds, cmd)...)

	case attendanceview.LoadedMsg, attendanceview.ChangedMsg:
		if changed, ok := msg.(attendanceview.ChangedMsg); ok && changed.Err != nil {
			m.status = "attendance: " + changed.Err.Error()
		}
		m.attendanceView, cmd = m.attendanceView.Update(msg)
		return m, cmd

	case plannerview.LoadedMsg:
		m.plannerView, cmd = m.plannerView.Update(msg)
		return m, cmd

	case plannerview.TaskChangedMsg:
		m.status = taskStatus(msg)
		m.plannerView, cmd = m.plannerView.Update(msg)
		return m, tea.Batch(cmd, m.progressView.Reload())

	case progressview.LoadedMsg:
		m.progressView, cmd = m.progressView.Update(msg)
		return m, cmd

	case coachview.ReplyMsg, spinner.TickMsg:
		m.coachView, cmd = m.coachView.Update(msg)
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.status = theme.Bad.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}
		return m, m.reload(msg.reload...)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while it takes free text.
		if m.subViewTyping() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Propagate the message to the active tab's sub-view.
	switch m.activeTab {
	case tabTimer:
		m.timerView, cmd = m.timerView.Update(msg)
	case tabAttendance:
		m.attendanceView, cmd = m.attendanceView.Update(msg)
	case tabPlanner:
		m.plannerView, cmd = m.plannerView.Update(msg)
	case tabProgress:
		m.progressView, cmd = m.progressView.Update(msg)
	case tabCoach:
		m.coachView, cmd = m.coachView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabAttendance:
		return m.attendanceView.View()
	case tabPlanner:
		return m.plannerView.View()
	case tabProgress:
		return m.progressView.View()
	case tabCoach:
		return m.coachView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "lockedin  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if snap := m.timerView.Snapshot(); snap.Running || snap.Status == "paused" {
		left = theme.Hot.Render("● "+snap.Clock+" "+snap.Label) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewTyping reports whether the active tab takes free text, in which
// case global key bindings must yield.
func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabPlanner:
		return m.plannerView.Filtering()
	case tabCoach:
		return m.coachView.Typing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.attendanceView, _ = m.attendanceView.Update(sz)
	m.plannerView, _ = m.plannerView.Update(sz)
	m.progressView, _ = m.progressView.Update(sz)
	m.coachView, _ = m.coachView.Update(sz)
}

func (m Model) reload(tabs ...tabID) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(tabs))
	for _, tab := range tabs {
		switch tab {
		case tabAttendance:
			cmds = append(cmds, m.attendanceView.Reload())
		case tabPlanner:
			cmds = append(cmds, m.plannerView.Reload())
		case tabProgress:
			cmds = append(cmds, m.progressView.Reload())
		}
	}
	return tea.Batch(cmds...)
}

func taskStatus(msg plannerview.TaskChangedMsg) string {
	if msg.Err != nil {
		return theme.Bad.Render(msg.Err.Error())
	}
	if msg.Outcome.Warning != "" {
		return theme.Warn.Render(msg.Outcome.Warning)
	}
	if msg.Note != "" {
		return msg.Note
	}
	return rewardStatus(msg.Outcome.Task.Text, msg.Outcome.Reward)
}

func rewardStatus(subject string, r plannerdto.Reward) string {
	parts := []string{subject}
	if r.XP > 0 {
		parts = append(parts, theme.Hot.Render(fmt.Sprintf("+%d XP", r.XP)))
	}
	if r.LeveledUp {
		parts = append(parts, theme.Good.Render(fmt.Sprintf("Level %d!", r.Level)))
	}
	for _, badge := range r.Badges {
		parts = append(parts, theme.Good.Render("badge: "+badge))
	}
	return strings.Join(parts, "  ")
}
