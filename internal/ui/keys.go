package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"momentum/internal/config"
)

type keyMap struct {
	Quit        key.Binding
	Add         key.Binding
	Up          key.Binding
	Down        key.Binding
	Delete      key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Edit        key.Binding
	NextPane    key.Binding
	NewList     key.Binding
	RemoveList  key.Binding
	OpenSidebar key.Binding
	ToggleMode  key.Binding
	AddColor    key.Binding
	Apply       key.Binding
	FocusTimer  key.Binding
	ResetTimer  key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:         key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add todo")),
		Up:          key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up, "up")),
		Down:        key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down, "down")),
		Delete:      key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Confirm:     key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "save")),
		Cancel:      key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		Edit:        key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(k.Edit, "edit")),
		NextPane:    key.NewBinding(key.WithKeys(k.NextPane), key.WithHelp(k.NextPane, "switch")),
		NewList:     key.NewBinding(key.WithKeys(k.NewList), key.WithHelp(k.NewList, "new list")),
		RemoveList:  key.NewBinding(key.WithKeys(k.RemoveList), key.WithHelp(k.RemoveList, "remove list")),
		OpenSidebar: key.NewBinding(key.WithKeys(k.OpenSidebar), key.WithHelp(k.OpenSidebar, "settings")),
		ToggleMode:  key.NewBinding(key.WithKeys(k.ToggleMode), key.WithHelp(k.ToggleMode, "solid/custom")),
		AddColor:    key.NewBinding(key.WithKeys(k.AddColor), key.WithHelp(k.AddColor, "add color")),
		Apply:       key.NewBinding(key.WithKeys(k.ApplyPalette), key.WithHelp(k.ApplyPalette, "use color")),
		FocusTimer:  key.NewBinding(key.WithKeys(k.FocusTimer), key.WithHelp(k.FocusTimer, "focus timer")),
		ResetTimer:  key.NewBinding(key.WithKeys(k.ResetTimer), key.WithHelp(k.ResetTimer, "reset timer")),
	}
}

func (k keyMap) mainHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPane, k.Add, k.Delete, k.NewList, k.RemoveList, k.OpenSidebar, k.FocusTimer, k.ResetTimer, k.Quit}
}

func (k keyMap) sidebarHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Edit, k.Confirm, k.Cancel, k.ToggleMode, k.AddColor, k.Apply, k.Delete}
}
