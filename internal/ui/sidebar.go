package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"momentum/internal/editor"
	"momentum/internal/model"
)

func (m *Model) openSidebar() {
	m.sidebarOpen = true
	m.focus = focusUsername
	m.setStatus("Settings: tab to move, esc to close")
}

// closeSidebar can be called in any state; drafts are thrown away.
func (m *Model) closeSidebar() {
	m.blurField()
	m.sidebarOpen = false
	m.setStatus("")
}

// blurField is the single dismissal path: whichever field in the focused
// section is being edited loses its draft.
func (m *Model) blurField() {
	switch m.focus {
	case focusUsername:
		m.username.Discard()
		m.usernameInput.Blur()
	case focusBackground:
		m.background.Custom.Discard()
		m.searchInput.Blur()
	case focusPalette:
		m.colorEntry.Discard()
		m.colorInput.Blur()
	}
}

func (m Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingInSidebar() {
		return m.updateSidebarEditing(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeSidebar()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPane):
		m.blurField()
		m.focus = (m.focus + 1) % sideFocusCount
	case key.Matches(msg, m.keys.OpenSidebar):
		m.closeSidebar()
	default:
		switch m.focus {
		case focusUsername:
			return m.updateUsernameViewing(msg)
		case focusBackground:
			return m.updateBackgroundViewing(msg)
		case focusPalette:
			return m.updatePaletteViewing(msg)
		}
	}
	return m, nil
}

func (m Model) editingInSidebar() bool {
	switch m.focus {
	case focusUsername:
		return m.username.Editing()
	case focusBackground:
		return m.background.Custom.Editing()
	case focusPalette:
		return m.colorEntry.Editing()
	}
	return false
}

// updateSidebarEditing routes keys while a field holds a draft: confirm
// commits, cancel discards, tab blurs (discarding), the rest is typing.
func (m Model) updateSidebarEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.blurField()
		m.setStatus("Edit discarded")
		return m, nil
	case key.Matches(msg, m.keys.NextPane):
		m.blurField()
		m.focus = (m.focus + 1) % sideFocusCount
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		switch m.focus {
		case focusUsername:
			return m.commitUsername()
		case focusBackground:
			return m.commitSearch()
		case focusPalette:
			return m.commitColor()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusUsername:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
		m.username.SetDraft(m.usernameInput.Value())
	case focusBackground:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.background.Custom.SetDraft(m.searchInput.Value())
	case focusPalette:
		m.colorInput, cmd = m.colorInput.Update(msg)
		m.colorEntry.SetDraft(m.colorInput.Value())
	}
	return m, cmd
}

func (m Model) updateUsernameViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Edit) || key.Matches(msg, m.keys.Confirm) {
		m.username.Begin()
		m.usernameInput.SetValue(m.username.Draft())
		m.usernameInput.CursorEnd()
		m.usernameInput.Focus()
	}
	return m, nil
}

func (m Model) commitUsername() (tea.Model, tea.Cmd) {
	value, changed := m.username.Commit()
	m.usernameInput.Blur()
	if !changed {
		m.setStatus("Username unchanged")
		return m, nil
	}
	m.setStatus("Saving username…")
	svc := m.svc
	return m, m.run(opUsername, func(ctx context.Context) error {
		return svc.CommitUsername(ctx, value)
	})
}

func (m Model) updateBackgroundViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ToggleMode) {
		m.background.Toggle()
		return m, nil
	}

	if m.background.Selected() == model.BackgroundCustom {
		if key.Matches(msg, m.keys.Edit) || key.Matches(msg, m.keys.Confirm) {
			m.background.Custom.Begin()
			m.searchInput.SetValue(m.background.Custom.Draft())
			m.searchInput.CursorEnd()
			m.searchInput.Focus()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.presetCursor = clampCursor(m.presetCursor+1, len(model.PresetColors))
	case key.Matches(msg, m.keys.Up):
		m.presetCursor = clampCursor(m.presetCursor-1, len(model.PresetColors))
	case key.Matches(msg, m.keys.Confirm):
		return m.commitBackground(m.background.PickSolid(model.PresetColors[m.presetCursor]))
	default:
		for i := range model.PresetColors {
			if msg.String() == fmt.Sprint(i+1) {
				m.presetCursor = i
				return m.commitBackground(m.background.PickSolid(model.PresetColors[i]))
			}
		}
	}
	return m, nil
}

func (m Model) commitSearch() (tea.Model, tea.Cmd) {
	typ, value, ok := m.background.CommitCustom()
	m.searchInput.Blur()
	if !ok {
		return m, nil
	}
	return m.commitBackground(typ, value)
}

func (m Model) commitBackground(typ model.BackgroundType, value string) (tea.Model, tea.Cmd) {
	m.setStatus("Saving background…")
	svc := m.svc
	return m, m.run(opBackground, func(ctx context.Context) error {
		return svc.CommitBackground(ctx, typ, value)
	})
}

func (m Model) updatePaletteViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	colors := m.profile.CustomBackgroundColors
	switch {
	case key.Matches(msg, m.keys.AddColor):
		m.colorEntry.Begin()
		m.colorInput.SetValue(m.colorEntry.Draft())
		m.colorInput.Focus()
	case key.Matches(msg, m.keys.Down):
		m.paletteCursor = clampCursor(m.paletteCursor+1, len(colors))
	case key.Matches(msg, m.keys.Up):
		m.paletteCursor = clampCursor(m.paletteCursor-1, len(colors))
	case key.Matches(msg, m.keys.Delete):
		if len(colors) == 0 {
			return m, nil
		}
		color := colors[m.paletteCursor]
		m.setStatus("Removing color…")
		svc := m.svc
		return m, m.run(opRemoveColor, func(ctx context.Context) error {
			return svc.RemoveCustomColor(ctx, color)
		})
	case key.Matches(msg, m.keys.Apply):
		if len(colors) == 0 {
			return m, nil
		}
		return m.commitBackground(m.background.PickSolid(colors[m.paletteCursor]))
	}
	return m, nil
}

func (m Model) commitColor() (tea.Model, tea.Cmd) {
	if _, err := model.NormalizeColor(m.colorEntry.Draft()); err != nil {
		m.setError(err)
		return m, nil
	}
	value, _ := m.colorEntry.Commit()
	m.colorEntry = editor.NewField("")
	m.colorInput.SetValue("")
	m.colorInput.Blur()
	m.setStatus("Adding color…")
	svc := m.svc
	return m, m.run(opAddColor, func(ctx context.Context) error {
		return svc.AddCustomColor(ctx, value)
	})
}
