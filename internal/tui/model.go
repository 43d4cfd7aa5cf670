package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"denling/internal/engine"
	"denling/internal/storage"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	profile   *storage.Profile
	companion *engine.CompanionView
	tasks     []storage.Task
	atRisk    bool

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile   *storage.Profile
	companion *engine.CompanionView
	tasks     []storage.Task
	atRisk    bool
	err       error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

type checkedInMsg struct {
	res *engine.CheckInResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.ProfileRepo().GetOrCreateMain(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		view, err := m.svc.CompanionState(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.OpenTasks(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		atRisk, err := m.svc.StreakAtRisk(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{profile: p, companion: view, tasks: tasks, atRisk: atRisk}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) checkInCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CheckIn(m.ctx)
		return checkedInMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.companion = msg.companion
		m.tasks = msg.tasks
		m.atRisk = msg.atRisk
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeCompletion(msg.res)
		return m, m.loadCmd()
	case checkedInMsg:
		if msg.err != nil {
			m.lastLog = "Check-in failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeCheckIn(msg.res)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "i":
			m.lastLog = "Checking in…"
			return m, m.checkInCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				return m, nil
			}
			t := m.tasks[m.selected]
			m.lastLog = fmt.Sprintf("Completing %d…", t.ID)
			return m, m.completeCmd(t.ID)
		}
	}
	return m, nil
}

func describeCheckIn(res *engine.CheckInResult) string {
	if res.AlreadyCheckedIn {
		return "Already checked in today."
	}
	line := fmt.Sprintf("Day %d: +%d coins, +%d XP", res.Streak, res.Reward.Coins, res.Reward.XP)
	if res.LevelUp {
		line += fmt.Sprintf(" (level %d → %d)", res.LevelBefore, res.LevelAfter)
	}
	if res.Evolved != nil {
		line += " — evolved into " + res.Evolved.Name + "!"
	}
	return line
}

func describeCompletion(res *engine.CompleteResult) string {
	line := fmt.Sprintf("Completed %d.", res.TaskID)
	if res.NextDue != nil {
		line += " Next due " + res.NextDue.Format("2006-01-02") + "."
	}
	if res.CheckIn != nil && !res.CheckIn.AlreadyCheckedIn {
		line += " " + describeCheckIn(res.CheckIn)
	}
	return line
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.companion == nil {
		return "Denling — loading…"
	}
	c := m.companion
	bar := progressBar(
		c.XPTotal-engine.XPRequiredForLevel(c.Level),
		c.NextLevelAt-engine.XPRequiredForLevel(c.Level),
		30,
	)
	return fmt.Sprintf("Denling | %s (%s) | Level %d | XP %d %s",
		c.Evolution.Current.Name, c.Species, c.Level, c.XPTotal, bar)
}

func (m boardModel) renderSidebar() string {
	if m.profile == nil || m.companion == nil {
		return "Stats\n\nLoading…"
	}
	var lines []string
	lines = append(lines, "Streak")
	streak := fmt.Sprintf("- current: %d (best %d)", m.profile.CurrentStreak, m.profile.LongestStreak)
	if m.atRisk {
		streak += " !"
	}
	lines = append(lines, streak)
	if m.profile.ProtectionActive {
		lines = append(lines, "- protection: armed")
	} else {
		lines = append(lines, "- protection: off")
	}
	lines = append(lines, fmt.Sprintf("- coins: %d", m.profile.Coins))
	lines = append(lines, "")
	lines = append(lines, "Evolution")
	ev := m.companion.Evolution
	lines = append(lines, "- stage: "+ev.Current.Name)
	if ev.Next != nil {
		lines = append(lines, fmt.Sprintf("- next: %s in %d lvls", ev.Next.Name, ev.LevelsToNext))
		lines = append(lines, "- "+progressBar(ev.ProgressPercent, 100, 14))
	} else {
		lines = append(lines, "- final stage reached")
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- i: check in")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Tasks")
	if len(m.tasks) == 0 {
		out = append(out, "(no open tasks)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		due := ""
		if t.DueDate != nil {
			due = " due " + t.DueDate.Format("2006-01-02")
		}
		repeat := ""
		if t.RecurrenceRule != "" && t.RecurrenceRule != "none" {
			repeat = " [" + t.RecurrenceRule + "]"
		}
		out = append(out, fmt.Sprintf("%s%d %s%s%s", cursor, t.ID, t.Title, due, repeat))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
