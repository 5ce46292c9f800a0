package model

import (
	"slices"
	"strings"
)

type BackgroundType string

const (
	BackgroundSolid  BackgroundType = "solid"
	BackgroundCustom BackgroundType = "custom"
)

const (
	DefaultBackgroundValue = "#2f2c5c"
	DefaultListTitle       = "New Todo List"
	DefaultUsername        = "Stranger"
)

// PresetColors are the solid backgrounds offered next to the radio control.
var PresetColors = []string{"#7C0902", "#2F2C5C", "#3E4125", "#121010"}

type TodoList struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Todos []string `json:"todos"`
}

type Profile struct {
	Username               string         `json:"username"`
	BackgroundType         BackgroundType `json:"backgroundType"`
	BackgroundValue        string         `json:"backgroundValue"`
	CustomBackgroundColors []string       `json:"customBackgroundColors"`
}

func DefaultProfile() Profile {
	return Profile{
		BackgroundType:         BackgroundSolid,
		BackgroundValue:        DefaultBackgroundValue,
		CustomBackgroundColors: []string{},
	}
}

// Normalize fills fields a server may omit. A missing palette becomes an
// empty slice, never nil.
func (p Profile) Normalize() Profile {
	if p.CustomBackgroundColors == nil {
		p.CustomBackgroundColors = []string{}
	} else {
		p.CustomBackgroundColors = slices.Clone(p.CustomBackgroundColors)
	}
	return p
}

// DisplayName is the username shown when none was set.
func (p Profile) DisplayName() string {
	if strings.TrimSpace(p.Username) == "" {
		return DefaultUsername
	}
	return p.Username
}

func NewListDraft() TodoList {
	return TodoList{Title: DefaultListTitle, Todos: []string{}}
}

func (l TodoList) Clone() TodoList {
	l.Todos = slices.Clone(l.Todos)
	if l.Todos == nil {
		l.Todos = []string{}
	}
	return l
}

func ParseBackgroundType(v string) (BackgroundType, bool) {
	switch BackgroundType(strings.ToLower(strings.TrimSpace(v))) {
	case BackgroundSolid:
		return BackgroundSolid, true
	case BackgroundCustom:
		return BackgroundCustom, true
	default:
		return "", false
	}
}
