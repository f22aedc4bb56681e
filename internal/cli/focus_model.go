package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/service"
)

type focusKeyMap struct {
	Complete key.Binding
	Quit     key.Binding
}

var focusKeys = focusKeyMap{
	Complete: key.NewBinding(
		key.WithKeys("c", "enter"),
		key.WithHelp("c", "complete step"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

type focusTickMsg time.Time

type focusSyncMsg struct {
	snap *service.Snapshot
	err  error
}

type focusCompletedMsg struct {
	xp  int
	err error
}

// focusModel is the live countdown view for the active step. Every second
// it runs a tick pass so expiry and slot handling stay current while the
// timer is on screen.
type focusModel struct {
	app *App

	snap      *service.Snapshot
	completed bool
	earnedXP  int
	err       error
}

func newFocusModel(app *App) focusModel {
	return focusModel{app: app}
}

func (m focusModel) Init() tea.Cmd {
	return tea.Batch(m.sync(), focusTick())
}

func focusTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return focusTickMsg(t)
	})
}

// sync runs a tick pass and reloads the snapshot.
func (m focusModel) sync() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()
		if _, err := app.Tick.RunTick(ctx, now); err != nil {
			return focusSyncMsg{err: err}
		}
		snap, err := app.Status.Snapshot(ctx, now)
		return focusSyncMsg{snap: snap, err: err}
	}
}

func (m focusModel) completeStep() tea.Cmd {
	app := m.app
	snap := m.snap
	return func() tea.Msg {
		if snap == nil || snap.Goal == nil || snap.ActiveStep == nil {
			return focusCompletedMsg{err: fmt.Errorf("no active step")}
		}
		ev, err := app.Goals.CompleteStep(context.Background(), snap.Goal.ID, snap.Goal.CheckpointIndex, time.Now())
		if err != nil {
			return focusCompletedMsg{err: err}
		}
		xp := 0
		if ev != nil {
			xp = ev.Magnitude
		}
		return focusCompletedMsg{xp: xp}
	}
}

func (m focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusTickMsg:
		if m.completed {
			return m, nil
		}
		return m, tea.Batch(m.sync(), focusTick())

	case focusSyncMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.snap = msg.snap
		return m, nil

	case focusCompletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.completed = true
		m.earnedXP = msg.xp
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, focusKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, focusKeys.Complete):
			return m, m.completeStep()
		}
	}

	return m, nil
}

func (m focusModel) View() string {
	if m.err != nil {
		return formatter.StyleBad.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.completed {
		msg := "Step complete."
		if m.earnedXP > 0 {
			msg = fmt.Sprintf("Step complete! +%d XP", m.earnedXP)
		}
		return formatter.StyleGood.Render(msg) + "\n"
	}
	if m.snap == nil {
		return formatter.Dim("Loading...") + "\n"
	}

	step := m.snap.ActiveStep
	if step == nil || step.Status != domain.TaskActive {
		return formatter.Dim("No running timer. Start one with `innerpath step start`.") + "\n"
	}

	var pct float64
	if step.DurationSec > 0 {
		pct = 1 - float64(m.snap.RemainingSec)/float64(step.DurationSec)
	}

	countdown := lipgloss.NewStyle().
		Foreground(formatter.AccentColor()).
		Bold(true).
		Render(formatter.FormatCountdown(m.snap.RemainingSec))

	body := fmt.Sprintf("%s\n\n%s\n%s\n\n%s",
		formatter.Bold(step.Title),
		countdown,
		formatter.RenderProgress(pct, 24),
		formatter.Dim("c complete · q quit"))

	return formatter.RenderBox("Focus", body) + "\n"
}
