package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/syncer"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
	"github.com/sola-app/sola/pkg/api"
)

// The board never blocks on the network: every key dispatches a tea.Cmd
// that runs the action through the orchestrator, and the view always
// renders the latest store snapshot. A periodic tick re-snapshots so
// day-clock refreshes running in the background show up too.

const snapshotInterval = 2 * time.Second

type snapshot struct {
	day          string
	xp           store.Slot[api.XPState]
	dayStatus    store.Slot[api.DayStatus]
	mission      store.Slot[api.Mission]
	mood         store.Slot[api.Mood]
	habits       store.Slot[[]api.Habit]
	tasks        store.Slot[[]api.Task]
	achievements store.Slot[[]api.Achievement]
}

type focusArea int

const (
	focusHabits focusArea = iota
	focusTasks
)

type boardModel struct {
	ctx  context.Context
	orch *syncer.Orchestrator

	width  int
	height int

	snap     snapshot
	focus    focusArea
	selected int
	selTask  int

	lastLog string
	busy    bool
}

type actionMsg struct {
	label string
	err   error
}

type tickMsg time.Time

func newBoardModel(ctx context.Context, orch *syncer.Orchestrator) boardModel {
	return boardModel{
		ctx:     ctx,
		orch:    orch,
		snap:    takeSnapshot(orch),
		lastLog: "Loading…",
		busy:    true,
	}
}

func takeSnapshot(orch *syncer.Orchestrator) snapshot {
	st := orch.Store()
	return snapshot{
		day:          orch.Today(),
		xp:           st.XP(),
		dayStatus:    st.Day(),
		mission:      st.Mission(),
		mood:         st.Mood(),
		habits:       st.Habits(),
		tasks:        st.Tasks(),
		achievements: st.Achievements(),
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(snapshotInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.orch.RefreshAll(m.ctx)
		return actionMsg{label: "Refreshed", err: err}
	}
}

func (m boardModel) actionCmd(label string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{label: label, err: fn(m.ctx)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.snap = takeSnapshot(m.orch)
		m = m.clampSelection()
		return m, tickCmd()

	case actionMsg:
		m.busy = false
		m.snap = takeSnapshot(m.orch)
		m = m.clampSelection()
		if msg.err != nil {
			m.lastLog = ui.Bad.Render(msg.label + " failed: " + msg.err.Error())
			return m, nil
		}
		m.lastLog = fmt.Sprintf("%s at %s.", msg.label, time.Now().Format("15:04:05"))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.busy = true
		m.lastLog = "Refreshing…"
		return m, m.refreshCmd()
	case "tab":
		if m.focus == focusHabits {
			m.focus = focusTasks
		} else {
			m.focus = focusHabits
		}
		return m, nil
	case "up", "k":
		if m.focus == focusTasks {
			if m.selTask > 0 {
				m.selTask--
			}
		} else if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.focus == focusTasks {
			if n := len(m.snap.tasks.Value); m.selTask < n-1 {
				m.selTask++
			}
		} else if n := len(m.snap.habits.Value); m.selected < n-1 {
			m.selected++
		}
		return m, nil
	case " ", "enter":
		if m.focus == focusTasks {
			tasks := m.snap.tasks.Value
			if m.selTask < 0 || m.selTask >= len(tasks) {
				return m, nil
			}
			t := tasks[m.selTask]
			next := nextStatus(t.Status)
			m.busy = true
			m.lastLog = "Updating task…"
			return m, m.actionCmd("Task moved to "+string(next), func(ctx context.Context) error {
				return m.orch.SetTaskStatus(ctx, t.ID, next)
			})
		}
		habits := m.snap.habits.Value
		if m.selected < 0 || m.selected >= len(habits) {
			return m, nil
		}
		h := habits[m.selected]
		m.busy = true
		m.lastLog = "Checking habit…"
		return m, m.actionCmd("Habit updated", func(ctx context.Context) error {
			return m.orch.ToggleHabit(ctx, h.ID, true)
		})
	case "m":
		m.busy = true
		m.lastLog = "Toggling mission…"
		return m, m.actionCmd("Mission updated", func(ctx context.Context) error {
			return m.orch.ToggleMissionDone(ctx, "")
		})
	case "d":
		m.busy = true
		m.lastLog = "Completing day…"
		return m, m.actionCmd("Day completed", m.orch.CompleteDay)
	case "1", "2", "3", "4", "5":
		rating := int(msg.String()[0] - '0')
		m.busy = true
		m.lastLog = "Logging mood…"
		return m, m.actionCmd(fmt.Sprintf("Mood %d logged", rating), func(ctx context.Context) error {
			return m.orch.LogMood(ctx, rating)
		})
	case "w":
		m.busy = true
		m.lastLog = "Fetching weekly report…"
		return m, m.actionCmd("Weekly report fetched", func(ctx context.Context) error {
			_, err := m.orch.FetchWeekly(ctx)
			return err
		})
	}
	return m, nil
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderMission())
	b.WriteString("\n")
	b.WriteString(m.renderMood())
	b.WriteString("\n\n")
	b.WriteString(m.renderHabits())
	b.WriteString("\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	line := ui.Heading(ui.IconSun, "Sola") + "  " + ui.Muted.Render(m.snap.day)
	if m.snap.xp.State != store.Loaded {
		return line + "\n" + ui.Muted.Render("syncing…")
	}
	xp := m.snap.xp.Value
	bar := ui.ProgressBar(xp.XPInLevel, xp.XPForNext, 24)
	stats := fmt.Sprintf("%s Level %d  %s %d/%d XP  %s streak %d",
		ui.IconBolt, xp.Level, bar, xp.XPInLevel, xp.XPForNext, ui.IconLoop, xp.Streak)
	if a := m.snap.achievements; a.State == store.Loaded && len(a.Value) > 0 {
		stats += fmt.Sprintf("  %s %d", ui.IconTrophy, len(a.Value))
	}
	if m.snap.dayStatus.State == store.Loaded && m.snap.dayStatus.Value.Completed {
		stats += "  " + ui.BadgeDayDone
	}
	return line + "\n" + stats
}

func (m boardModel) renderMission() string {
	head := ui.H2.Render(ui.IconTarget + " Mission")
	switch m.snap.mission.State {
	case store.Loaded:
		mk := "[ ]"
		if m.snap.mission.Value.Done {
			mk = ui.Good.Render("[x]")
		}
		return head + "\n  " + mk + " " + m.snap.mission.Value.Text
	case store.Absent:
		return head + "\n  " + ui.Muted.Render("(none set — sola mission save \"…\")")
	default:
		return head + "\n  " + ui.Muted.Render("…")
	}
}

func (m boardModel) renderMood() string {
	head := ui.H2.Render(ui.IconMoon + " Mood")
	switch m.snap.mood.State {
	case store.Loaded:
		return head + "  " + ui.MoodFace(m.snap.mood.Value.Rating) +
			ui.Muted.Render(fmt.Sprintf(" (%d/5)", m.snap.mood.Value.Rating))
	case store.Absent:
		return head + "  " + ui.Muted.Render("(not logged — press 1-5)")
	default:
		return head + "  " + ui.Muted.Render("…")
	}
}

func (m boardModel) renderHabits() string {
	head := ui.H2.Render(ui.IconLoop + " Habits")
	if m.snap.habits.State != store.Loaded {
		return head + "\n  " + ui.Muted.Render("…")
	}
	habits := m.snap.habits.Value
	if len(habits) == 0 {
		return head + "\n  " + ui.Muted.Render("(none)")
	}
	lines := []string{head}
	for i, h := range habits {
		cursor := "  "
		name := h.Name
		if m.focus == focusHabits && i == m.selected {
			cursor = "> "
			name = ui.SelectedRow.Render(name)
		}
		if !h.Active {
			name = ui.Muted.Render(h.Name + " (inactive)")
		}
		lines = append(lines, cursor+name)
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderTasks() string {
	head := ui.H2.Render(ui.IconNote + " Tasks")
	if m.snap.tasks.State != store.Loaded {
		return head + "\n  " + ui.Muted.Render("…")
	}
	tasks := m.snap.tasks.Value
	if len(tasks) == 0 {
		return head + "\n  " + ui.Muted.Render("(none for today)")
	}
	lines := []string{head}
	for i, t := range tasks {
		cursor := "  "
		title := t.Title
		if m.focus == focusTasks && i == m.selTask {
			cursor = "> "
			title = ui.SelectedRow.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s", cursor, title, ui.StatusText(t.Status)))
	}
	return strings.Join(lines, "\n")
}

// clampSelection keeps the cursors valid after the lists change size.
func (m boardModel) clampSelection() boardModel {
	if n := len(m.snap.habits.Value); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if n := len(m.snap.tasks.Value); m.selTask >= n {
		m.selTask = n - 1
	}
	if m.selTask < 0 {
		m.selTask = 0
	}
	return m
}

// nextStatus cycles a task through the statuses reachable from the
// board; archiving stays a CLI operation.
func nextStatus(s api.TaskStatus) api.TaskStatus {
	switch s {
	case api.TaskPending:
		return api.TaskCompleted
	case api.TaskCompleted:
		return api.TaskDeferred
	default:
		return api.TaskPending
	}
}

func (m boardModel) renderFooter() string {
	keys := ui.Muted.Render("tab focus · j/k move · space act · m mission · 1-5 mood · d complete day · w weekly · r refresh · q quit")
	status := m.lastLog
	if m.busy {
		status = ui.Warn.Render(status)
	}
	return "\n" + status + "\n" + keys
}
