package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"momentum/internal/model"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Momentum"))
	b.WriteString("  ")
	b.WriteString(greetingStyle.Render("Hello, " + m.profile.DisplayName()))
	b.WriteString("  ")
	b.WriteString(m.renderBackgroundBadge())
	b.WriteString("\n\n")

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(m.pane == paneTodos && !m.sidebarOpen, m.renderTodos()),
		panel(m.pane == paneLists && !m.sidebarOpen, m.renderLists()),
	)
	if m.sidebarOpen {
		main = lipgloss.JoinHorizontal(lipgloss.Top, panel(true, m.renderSidebar()), main)
	}
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(m.renderTimer())
	b.WriteString("\n\n")

	if m.statusErr {
		b.WriteString(errorStyle.Render("✖ " + m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	if m.sidebarOpen {
		b.WriteString(m.help.ShortHelpView(m.keys.sidebarHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.mainHelp()))
	}
	return b.String()
}

func (m Model) renderBackgroundBadge() string {
	if m.profile.BackgroundType == model.BackgroundCustom {
		return mutedStyle.Render("background: " + emptyPlaceholder(m.profile.BackgroundValue))
	}
	return swatch(m.profile.BackgroundValue) + " " + mutedStyle.Render(m.profile.BackgroundValue)
}

func (m Model) renderTodos() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString("\n")
	if len(m.todos) == 0 {
		b.WriteString(mutedStyle.Render("No to-dos yet. Press 'a' to add one."))
		b.WriteString("\n")
	}
	for i, t := range m.todos {
		cursor := "  "
		if i == m.todoCursor && m.pane == paneTodos {
			cursor = "> "
		}
		b.WriteString(cursor + t + "\n")
	}
	if m.adding {
		b.WriteString("\n")
		b.WriteString(m.todoInput.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderLists() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Lists"))
	b.WriteString("\n")
	if !m.ready {
		b.WriteString(mutedStyle.Render("loading…"))
		return b.String()
	}
	if len(m.lists) == 0 {
		b.WriteString(mutedStyle.Render("No lists. Press 'n' to create one."))
		return b.String()
	}
	for i, l := range m.lists {
		line := fmt.Sprintf("%s (%d)", l.Title, len(l.Todos))
		if i == m.activeList {
			if m.pane == paneLists {
				line = selectedStyle.Render(line)
			}
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	active := m.lists[clampCursor(m.activeList, len(m.lists))]
	b.WriteString("\n")
	for _, t := range active.Todos {
		b.WriteString("  • " + t + "\n")
	}
	return b.String()
}

func (m Model) renderSidebar() string {
	var b strings.Builder

	section := func(f sideFocus, title string) {
		if m.focus == f {
			b.WriteString(selectedStyle.Render(title))
		} else {
			b.WriteString(titleStyle.Render(title))
		}
		b.WriteString("\n")
	}

	section(focusUsername, "Name")
	if m.username.Editing() {
		b.WriteString(m.usernameInput.View())
		if m.username.Dirty() {
			b.WriteString(" " + dirtyStyle.Render("enter ✔  esc ✖"))
		}
	} else {
		b.WriteString(m.profile.DisplayName() + mutedStyle.Render("  (e to edit)"))
	}
	b.WriteString("\n\n")

	section(focusBackground, "Background")
	b.WriteString(radio(m.background.Selected() == model.BackgroundSolid) + " Solid  ")
	b.WriteString(radio(m.background.Selected() == model.BackgroundCustom) + " Unsplash\n")
	if m.background.Selected() == model.BackgroundSolid {
		for i, c := range model.PresetColors {
			marker := " "
			if i == m.presetCursor && m.focus == focusBackground {
				marker = ">"
			}
			b.WriteString(fmt.Sprintf("%s %d %s %s\n", marker, i+1, swatch(c), c))
		}
	} else {
		b.WriteString("Search for: ")
		if m.background.Custom.Editing() {
			b.WriteString(m.searchInput.View())
			if m.background.Custom.Dirty() {
				b.WriteString(" " + dirtyStyle.Render("enter to save"))
			}
		} else {
			b.WriteString(emptyPlaceholder(m.background.Custom.Value()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section(focusPalette, "Custom colors")
	colors := m.profile.CustomBackgroundColors
	if len(colors) == 0 {
		b.WriteString(mutedStyle.Render("none yet"))
		b.WriteString("\n")
	}
	for i, c := range colors {
		marker := " "
		if i == m.paletteCursor && m.focus == focusPalette {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, swatch(c), c))
	}
	if m.colorEntry.Editing() {
		b.WriteString(m.colorInput.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTimer() string {
	label := "Focus " + m.timer.View()
	switch {
	case m.timer.Timedout():
		label += successStyle.Render("  done")
	case !m.timerStarted:
		label += mutedStyle.Render("  (f to start)")
	case !m.timer.Running():
		label += mutedStyle.Render("  paused")
	}
	return label
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}
