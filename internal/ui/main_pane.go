package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPane):
		if m.pane == paneTodos {
			m.pane = paneLists
		} else {
			m.pane = paneTodos
		}
	case key.Matches(msg, m.keys.Down):
		if m.pane == paneTodos {
			m.todoCursor = clampCursor(m.todoCursor+1, len(m.todos))
		} else {
			m.activeList = clampCursor(m.activeList+1, len(m.lists))
		}
	case key.Matches(msg, m.keys.Up):
		if m.pane == paneTodos {
			m.todoCursor = clampCursor(m.todoCursor-1, len(m.todos))
		} else {
			m.activeList = clampCursor(m.activeList-1, len(m.lists))
		}
	case key.Matches(msg, m.keys.Add):
		m.pane = paneTodos
		m.adding = true
		m.todoInput.SetValue("")
		m.todoInput.Focus()
		m.setStatus("Add mode: type a to-do and press Enter")
	case key.Matches(msg, m.keys.Delete):
		if m.pane != paneTodos || len(m.todos) == 0 {
			return m, nil
		}
		if m.svc.RemoveTodo(m.todoCursor) {
			m.refresh()
			m.setStatus("Removed to-do")
		}
	case key.Matches(msg, m.keys.NewList):
		m.setStatus("Adding list…")
		svc := m.svc
		return m, m.run(opAddList, func(ctx context.Context) error {
			_, err := svc.AddList(ctx)
			return err
		})
	case key.Matches(msg, m.keys.RemoveList):
		if m.pane != paneLists || len(m.lists) == 0 {
			return m, nil
		}
		l := m.lists[m.activeList]
		m.pendingDel = &l
		m.setStatus(fmt.Sprintf("Delete list %q? y/n", l.Title))
	case key.Matches(msg, m.keys.OpenSidebar):
		m.openSidebar()
	case key.Matches(msg, m.keys.FocusTimer):
		return m.toggleTimer()
	case key.Matches(msg, m.keys.ResetTimer):
		m.resetTimer()
		m.setStatus("Focus timer reset")
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.todoInput.SetValue("")
		m.todoInput.Blur()
		m.setStatus("Cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		text := m.todoInput.Value()
		if strings.TrimSpace(text) == "" {
			m.setError(fmt.Errorf("to-do cannot be empty"))
			return m, nil
		}
		m.svc.AddTodo(text)
		m.refresh()
		m.todoCursor = clampCursor(len(m.todos)-1, len(m.todos))
		m.todoInput.SetValue("")
		m.setStatus("Added to-do")
		return m, nil
	default:
		var cmd tea.Cmd
		m.todoInput, cmd = m.todoInput.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "n", "N", "esc":
		m.pendingDel = nil
		m.setStatus("Delete cancelled")
		return m, nil
	case "y", "Y":
		id := m.pendingDel.ID
		m.pendingDel = nil
		m.setStatus("Removing list…")
		svc := m.svc
		return m, m.run(opRemoveList, func(ctx context.Context) error {
			return svc.RemoveList(ctx, id)
		})
	default:
		return m, nil
	}
}
