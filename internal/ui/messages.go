package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"momentum/internal/app"
	"momentum/internal/state"
)

type startupMsg struct {
	results []app.TaskResult
}

type opResultMsg struct {
	op  string
	err error
}

type stateChangedMsg struct {
	change state.Change
}

func (m Model) startupCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return startupMsg{results: svc.Startup(ctx)}
	}
}

// run performs a remote operation off the event loop and reports back.
func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opResultMsg{op: op, err: fn(ctx)}
	}
}
