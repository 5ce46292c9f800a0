package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"momentum/internal/app"
	"momentum/internal/config"
	"momentum/internal/editor"
	"momentum/internal/model"
	"momentum/internal/state"
)

type pane int

const (
	paneTodos pane = iota
	paneLists
)

type sideFocus int

const (
	focusUsername sideFocus = iota
	focusBackground
	focusPalette
	sideFocusCount
)

const (
	opAddList      = "add list"
	opRemoveList   = "remove list"
	opUsername     = "save username"
	opBackground   = "save background"
	opAddColor     = "add color"
	opRemoveColor  = "remove color"
	focusTickEvery = time.Second
)

type Model struct {
	svc    *app.Service
	cfg    config.Config
	keys   keyMap
	help   help.Model
	logger *log.Logger
	ctx    context.Context

	lists   []model.TodoList
	todos   []string
	profile model.Profile
	ready   bool

	pane       pane
	todoCursor int
	activeList int
	adding     bool
	todoInput  textinput.Model
	pendingDel *model.TodoList

	sidebarOpen   bool
	focus         sideFocus
	username      editor.Field
	usernameInput textinput.Model
	background    editor.Background
	syncedBg      [2]string
	searchInput   textinput.Model
	presetCursor  int
	paletteCursor int
	colorEntry    editor.Field
	colorInput    textinput.Model

	timer        timer.Model
	timerStarted bool

	status    string
	statusErr bool
}

func New(svc *app.Service, cfg config.Config, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	profile := svc.State().Profile()

	m := Model{
		svc:        svc,
		cfg:        cfg,
		keys:       newKeyMap(cfg.Keys),
		help:       help.New(),
		logger:     logger,
		ctx:        context.Background(),
		profile:    profile,
		username:   editor.NewField(profile.Username),
		background: editor.NewBackground(profile.BackgroundType, profile.BackgroundValue),
		syncedBg:   [2]string{string(profile.BackgroundType), profile.BackgroundValue},
		colorEntry: editor.NewField(""),
		status:     "Loading…",
	}
	m.todoInput = newInput("Add a new to-do", 256)
	m.usernameInput = newInput(model.DefaultUsername, 64)
	m.searchInput = newInput("Enter search query", 128)
	m.colorInput = newInput("#rrggbb", 7)
	m.resetTimer()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = "> "
	return ti
}

// Run starts the program. State changes made by the service are forwarded
// to the event loop so every pane re-renders from the committed state.
func Run(svc *app.Service, cfg config.Config, logger *log.Logger) error {
	m := New(svc, cfg, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())

	unsubscribe := svc.State().Subscribe(func(c state.Change) {
		go program.Send(stateChangedMsg{change: c})
	})
	defer unsubscribe()

	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.startupCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		width := msg.Width - 10
		m.todoInput.Width = width
		m.help.Width = msg.Width
	case startupMsg:
		m.ready = true
		m.refresh()
		failed := app.Failed(msg.results)
		if len(failed) == 0 {
			m.setStatus("Ready")
			return m, nil
		}
		for _, r := range failed {
			m.logger.Error("startup", "task", r.Name, "err", r.Err)
		}
		m.setError(fmt.Errorf("could not load %s: %w", failed[0].Name, failed[0].Err))
	case opResultMsg:
		m.refresh()
		if msg.err != nil {
			m.logger.Error("operation failed", "op", msg.op, "err", msg.err)
			m.resyncFields()
			m.setError(fmt.Errorf("%s: %w", msg.op, msg.err))
			return m, nil
		}
		if msg.op == opRemoveList {
			m.activeList = 0
		}
		m.setStatus(doneStatus(msg.op))
	case stateChangedMsg:
		m.refresh()
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd
	case timer.TimeoutMsg:
		m.setStatus(fmt.Sprintf("Focus session over. Nice work, %s!", m.profile.DisplayName()))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.pendingDel != nil {
		return m.updateDeleteConfirm(msg.String())
	}
	if m.sidebarOpen {
		return m.updateSidebar(msg)
	}
	if m.adding {
		return m.updateAddMode(msg)
	}
	return m.updateMain(msg)
}

// refresh copies the committed state into the view and syncs field
// editors that are not being edited.
func (m *Model) refresh() {
	st := m.svc.State()
	m.lists = st.Lists()
	m.todos = st.Todos()
	m.profile = st.Profile()

	m.todoCursor = clampCursor(m.todoCursor, len(m.todos))
	m.activeList = clampCursor(m.activeList, len(m.lists))
	m.paletteCursor = clampCursor(m.paletteCursor, len(m.profile.CustomBackgroundColors))

	m.username.Sync(m.profile.Username)
	bg := [2]string{string(m.profile.BackgroundType), m.profile.BackgroundValue}
	if bg != m.syncedBg {
		m.background.Sync(m.profile.BackgroundType, m.profile.BackgroundValue)
		m.syncedBg = bg
	}
}

// resyncFields puts the background panel back on the committed state after a
// failed save. refresh already covers the username.
func (m *Model) resyncFields() {
	m.background.Revert()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) resetTimer() {
	minutes := m.cfg.FocusMinutes
	if minutes <= 0 {
		minutes = 25
	}
	m.timer = timer.NewWithInterval(time.Duration(minutes)*time.Minute, focusTickEvery)
	m.timerStarted = false
}

func (m Model) toggleTimer() (Model, tea.Cmd) {
	if m.timer.Timedout() {
		m.resetTimer()
	}
	if !m.timerStarted {
		m.timerStarted = true
		m.setStatus("Focus session started")
		return m, m.timer.Start()
	}
	if m.timer.Running() {
		m.setStatus("Focus session paused")
	} else {
		m.setStatus("Focus session resumed")
	}
	return m, m.timer.Toggle()
}

func doneStatus(op string) string {
	switch op {
	case opAddList:
		return "Added list"
	case opRemoveList:
		return "Removed list"
	case opUsername:
		return "Username saved"
	case opBackground:
		return "Background saved"
	case opAddColor:
		return "Color added"
	case opRemoveColor:
		return "Color removed"
	default:
		return "Done"
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
