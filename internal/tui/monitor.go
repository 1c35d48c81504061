package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kelsos/task-orchestrator/internal/async"
	"github.com/kelsos/task-orchestrator/internal/models"
	"github.com/kelsos/task-orchestrator/internal/report"
)

const maxRecent = 10

type Model struct {
	runID     string
	strategy  async.Strategy
	total     int
	collected int
	completed int
	failed    int
	recent    []string
	summary   *report.Summary
	started   time.Time
	spinner   spinner.Model
	progress  progress.Model
	width     int
	height    int
	quit      bool
}

type RunStarted struct {
	RunID    string
	Strategy async.Strategy
	Total    int
}

type ResultCollected struct {
	Result models.TaskResult
}

type RunFinished struct {
	Summary report.Summary
}

func NewModel() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pr := progress.New(progress.WithDefaultGradient())

	return Model{
		recent:   []string{},
		spinner:  sp,
		progress: pr,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.handleKeyMsg(msg) {
			m.quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m = m.handleWindowSizeMsg(msg)

	case RunStarted:
		m.runID = msg.RunID
		m.strategy = msg.Strategy
		m.total = msg.Total
		m.started = time.Now()

	case ResultCollected:
		m = m.handleResultCollected(msg)

	case RunFinished:
		summary := msg.Summary
		m.summary = &summary
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		if progressModel, ok := progressModel.(progress.Model); ok {
			m.progress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func (m Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.progress.Width = max(msg.Width-40, 10)
	return m
}

func (m Model) handleResultCollected(msg ResultCollected) Model {
	m.collected++

	result := msg.Result
	if result.Status == models.TaskStatusCompleted {
		m.completed++
		return m
	}

	m.failed++
	errorInfo := ""
	if result.ErrorInfo != nil {
		errorInfo = *result.ErrorInfo
	}
	m.recent = append(m.recent, fmt.Sprintf("[%s] task %d: %s",
		time.Now().Format("15:04:05"), result.TaskID, truncate(errorInfo, 60)))
	if len(m.recent) > maxRecent {
		m.recent = m.recent[len(m.recent)-maxRecent:]
	}
	return m
}

// Percent is the share of submitted tasks whose result has been collected.
func (m Model) Percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.collected) / float64(m.total)
}

func (m Model) View() string {
	if m.quit {
		return "Monitor closed, the run continues in the background...\n"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	s.WriteString(headerStyle.Render("Task Orchestrator Monitor"))
	s.WriteString("\n\n")

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summary := fmt.Sprintf("Run: %s | Strategy: %s | Tasks: %d | ✅ Completed: %d | ❌ Failed: %d",
		m.runID, m.strategy, m.total, m.completed, m.failed)
	s.WriteString(summaryStyle.Render(summary))
	s.WriteString("\n\n")

	progressLine := fmt.Sprintf("%s %s %d/%d",
		m.spinner.View(), m.progress.ViewAs(m.Percent()), m.collected, m.total)
	if !m.started.IsZero() {
		progressLine += fmt.Sprintf(" (%s)", time.Since(m.started).Round(time.Second))
	}
	s.WriteString(progressLine)
	s.WriteString("\n\n")

	failureSectionStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(max(m.width-2, 20)).
		Height(maxRecent + 1)

	var failures strings.Builder
	failures.WriteString("Recent failures\n")
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	for _, line := range m.recent {
		failures.WriteString(errorStyle.Render(line) + "\n")
	}

	s.WriteString(failureSectionStyle.Render(failures.String()))
	s.WriteString("\n\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	footer := "Press 'q' to close the monitor | Logs: logs/task-orchestrator_*.log"
	if m.summary != nil {
		footer = fmt.Sprintf("Done: %d rows, %d duplicate results dropped",
			m.summary.Unique, m.summary.Duplicates)
	}
	s.WriteString(footerStyle.Render(footer))

	return s.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
