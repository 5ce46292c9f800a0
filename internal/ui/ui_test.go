package ui

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/app"
	"momentum/internal/config"
	"momentum/internal/model"
	"momentum/internal/remote"
	"momentum/internal/remote/remotetest"
	"momentum/internal/state"
	"momentum/internal/storage"
)

func newTestModel(t *testing.T) (Model, *remotetest.Backend) {
	t.Helper()
	backend, srv := remotetest.NewServer(t)
	client, err := remote.New(srv.URL)
	require.NoError(t, err)
	svc := app.NewService(client, state.New())
	return New(svc, config.Default(), nil), backend
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys one by one and returns the command of the last one.
// Commands of earlier keys (cursor blinks) are dropped.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// finish runs a remote operation command and feeds its result back.
func finish(t *testing.T, m Model, cmd tea.Cmd) (Model, opResultMsg) {
	t.Helper()
	require.NotNil(t, cmd)
	res, ok := cmd().(opResultMsg)
	require.True(t, ok, "expected an operation result")
	next, _ := m.Update(res)
	return next.(Model), res
}

func start(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(m.Init()())
	return next.(Model)
}

func TestStartupGreetsUser(t *testing.T) {
	m, backend := newTestModel(t)
	backend.SetProfile(model.Profile{Username: "ada"})
	backend.SetLists(model.TodoList{ID: "1", Title: "Groceries", Todos: []string{"milk"}})

	m = start(t, m)
	assert.True(t, m.ready)
	assert.False(t, m.statusErr)
	view := m.View()
	assert.Contains(t, view, "Hello, ada")
	assert.Contains(t, view, "Groceries")
}

func TestStartupFailureIsShown(t *testing.T) {
	m, backend := newTestModel(t)
	backend.Fail(http.MethodGet, "/userprofile", http.StatusInternalServerError)

	m = start(t, m)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, app.TaskProfile)
	assert.Contains(t, m.View(), "Hello, "+model.DefaultUsername)
}

func TestCustomBackgroundCommitsOnce(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, _ = press(t, m, "s", "tab", "m", "e", "beach")
	assert.True(t, m.background.Custom.Dirty())
	assert.Contains(t, m.View(), "enter to save")

	m, cmd := press(t, m, "enter")
	m, res := finish(t, m, cmd)
	require.NoError(t, res.err)

	reqs := backend.RequestsFor(http.MethodPut, "/userprofile/background")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"type":"custom","value":"beach"}`, string(reqs[0].Body))
	assert.Equal(t, model.BackgroundCustom, m.profile.BackgroundType)
	assert.Equal(t, "beach", m.profile.BackgroundValue)
	assert.False(t, m.background.Custom.Editing())
}

func TestToggleModeKeepsSolidValue(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, _ = press(t, m, "s", "tab", "m")
	assert.Equal(t, model.BackgroundCustom, m.background.Selected())
	m, _ = press(t, m, "m")
	assert.Equal(t, model.BackgroundSolid, m.background.Selected())
	assert.Equal(t, model.DefaultBackgroundValue, m.background.Solid())
	assert.Empty(t, backend.RequestsFor(http.MethodPut, "/userprofile/background"))
}

func TestPresetFailureRestoresCommittedColor(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)
	backend.Fail(http.MethodPut, "/userprofile/background", http.StatusInternalServerError)

	m, cmd := press(t, m, "s", "tab", "1")
	assert.Equal(t, model.PresetColors[0], m.background.Solid())
	m, res := finish(t, m, cmd)

	assert.Error(t, res.err)
	assert.True(t, m.statusErr)
	assert.Equal(t, model.DefaultBackgroundValue, m.background.Solid())
	assert.Equal(t, model.DefaultBackgroundValue, m.profile.BackgroundValue)
}

func TestUsernameCommit(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, _ = press(t, m, "s", "e", "grace")
	assert.True(t, m.username.Dirty())
	m, cmd := press(t, m, "enter")
	m, res := finish(t, m, cmd)
	require.NoError(t, res.err)

	assert.Equal(t, "grace", backend.Profile().Username)
	assert.Contains(t, m.View(), "Hello, grace")
}

func TestUsernameEscapeDiscards(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, _ = press(t, m, "s", "e", "bob")
	assert.Equal(t, "bob", m.username.Value())
	m, cmd := press(t, m, "esc")
	assert.Nil(t, cmd)
	assert.False(t, m.username.Editing())
	assert.Equal(t, "", m.username.Value())
	assert.True(t, m.sidebarOpen)
	assert.Empty(t, backend.RequestsFor(http.MethodPut, "/userprofile/username"))
}

func TestUnchangedUsernameSkipsRequest(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, cmd := press(t, m, "s", "e", "enter")
	assert.Nil(t, cmd)
	assert.False(t, m.username.Editing())
	assert.Empty(t, backend.RequestsFor(http.MethodPut, "/userprofile/username"))
}

func TestMovingFocusDiscardsDraft(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, _ = press(t, m, "s", "tab", "m", "e", "forest")
	assert.True(t, m.background.Custom.Editing())
	m, _ = press(t, m, "tab")
	assert.False(t, m.background.Custom.Editing())
	assert.Equal(t, "", m.background.Custom.Value())
	assert.Equal(t, focusPalette, m.focus)

	m, _ = press(t, m, "esc")
	assert.False(t, m.sidebarOpen)
	assert.Len(t, backend.Requests(), 2)
}

func TestPaletteAddAndRemove(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, cmd := press(t, m, "s", "tab", "tab", "c", "zz", "enter")
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)
	assert.True(t, m.colorEntry.Editing())

	m, _ = press(t, m, "esc", "c", "#abc")
	m, cmd = press(t, m, "enter")
	m, res := finish(t, m, cmd)
	require.NoError(t, res.err)
	assert.Equal(t, []string{"#aabbcc"}, m.profile.CustomBackgroundColors)
	assert.False(t, m.colorEntry.Editing())

	m, cmd = press(t, m, "d")
	m, res = finish(t, m, cmd)
	require.NoError(t, res.err)
	assert.Empty(t, m.profile.CustomBackgroundColors)
	assert.Empty(t, backend.Profile().CustomBackgroundColors)
}

func TestAddAndRemoveList(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)

	m, cmd := press(t, m, "n")
	m, res := finish(t, m, cmd)
	require.NoError(t, res.err)
	require.Len(t, m.lists, 1)
	assert.Equal(t, model.DefaultListTitle, m.lists[0].Title)
	assert.Len(t, backend.Lists(), 1)

	m, _ = press(t, m, "tab", "x")
	require.NotNil(t, m.pendingDel)
	m, _ = press(t, m, "n")
	assert.Nil(t, m.pendingDel)
	assert.Len(t, m.lists, 1)

	m, cmd = press(t, m, "x", "y")
	m, res = finish(t, m, cmd)
	require.NoError(t, res.err)
	assert.Empty(t, m.lists)
	assert.Empty(t, backend.Lists())
}

func TestAddTodoLocally(t *testing.T) {
	m, _ := newTestModel(t)
	m = start(t, m)

	m, _ = press(t, m, "a", "milk", "enter", "eggs", "enter", "esc")
	assert.False(t, m.adding)
	assert.Equal(t, []string{"milk", "eggs"}, m.todos)

	m, _ = press(t, m, "a", "enter")
	assert.True(t, m.statusErr)
	m, _ = press(t, m, "esc", "k", "d")
	assert.Equal(t, []string{"eggs"}, m.todos)
}

func TestTodoTypedBeforeStartupSurvives(t *testing.T) {
	_, srv := remotetest.NewServer(t)
	client, err := remote.New(srv.URL)
	require.NoError(t, err)
	store, err := storage.Open(filepath.Join(t.TempDir(), "momentum.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Put(storage.TodosKey, `["old"]`))

	svc := app.NewService(client, state.New(), app.WithMirror(storage.NewTodoMirror(store)))
	t.Cleanup(svc.AttachMirror())
	m := New(svc, config.Default(), nil)

	m, _ = press(t, m, "a", "new", "enter", "esc")
	assert.Equal(t, []string{"new"}, m.todos)

	m = start(t, m)
	assert.Equal(t, []string{"old", "new"}, m.todos)
	raw, _, err := store.Get(storage.TodosKey)
	require.NoError(t, err)
	assert.Equal(t, `["old","new"]`, raw)
}

func TestCustomFailureRestoresCommittedSearch(t *testing.T) {
	m, backend := newTestModel(t)
	m = start(t, m)
	backend.Fail(http.MethodPut, "/userprofile/background", http.StatusInternalServerError)

	m, _ = press(t, m, "s", "tab", "m", "e", "beach")
	m, cmd := press(t, m, "enter")
	m, res := finish(t, m, cmd)

	assert.Error(t, res.err)
	assert.Equal(t, model.BackgroundSolid, m.profile.BackgroundType)
	assert.Equal(t, model.BackgroundCustom, m.background.Selected())
	assert.Equal(t, "", m.background.Custom.Committed())
	assert.False(t, m.background.Custom.Editing())
	assert.Equal(t, model.DefaultBackgroundValue, m.background.Solid())
}

func TestRemovingListResetsActiveList(t *testing.T) {
	m, backend := newTestModel(t)
	backend.SetLists(
		model.TodoList{ID: "1", Title: "One"},
		model.TodoList{ID: "2", Title: "Two"},
		model.TodoList{ID: "3", Title: "Three"},
	)
	m = start(t, m)

	m, _ = press(t, m, "tab", "j", "j")
	assert.Equal(t, 2, m.activeList)
	m, cmd := press(t, m, "k", "x", "y")
	m, res := finish(t, m, cmd)
	require.NoError(t, res.err)

	assert.Equal(t, 0, m.activeList)
	require.Len(t, m.lists, 2)
	assert.Equal(t, "1", m.lists[0].ID)
	assert.Equal(t, "3", m.lists[1].ID)
}

// feedTimer applies a timer start/stop command and drops the tick it schedules.
func feedTimer(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(timer.StartStopMsg)
	require.True(t, ok, "expected a timer start/stop message")
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestFocusTimerStartPauseResume(t *testing.T) {
	m, _ := newTestModel(t)
	m = start(t, m)
	assert.Contains(t, m.View(), "f to start")

	m, cmd := press(t, m, "f")
	assert.True(t, m.timerStarted)
	m = feedTimer(t, m, cmd)
	assert.True(t, m.timer.Running())
	assert.Equal(t, "Focus session started", m.status)

	m, cmd = press(t, m, "f")
	assert.Equal(t, "Focus session paused", m.status)
	m = feedTimer(t, m, cmd)
	assert.False(t, m.timer.Running())
	assert.Contains(t, m.View(), "paused")

	m, cmd = press(t, m, "f")
	assert.Equal(t, "Focus session resumed", m.status)
	m = feedTimer(t, m, cmd)
	assert.True(t, m.timer.Running())
}

func TestFocusTimerRestartsAfterTimeout(t *testing.T) {
	m, _ := newTestModel(t)
	m = start(t, m)

	m, cmd := press(t, m, "f")
	m = feedTimer(t, m, cmd)
	m.timer.Timeout = 0
	assert.True(t, m.timer.Timedout())

	m, cmd = press(t, m, "f")
	assert.True(t, m.timerStarted)
	assert.Equal(t, 25*time.Minute, m.timer.Timeout)
	assert.Equal(t, "Focus session started", m.status)
	m = feedTimer(t, m, cmd)
	assert.True(t, m.timer.Running())
}

func TestFocusTimerReset(t *testing.T) {
	m, _ := newTestModel(t)
	m = start(t, m)

	m, cmd := press(t, m, "f")
	m = feedTimer(t, m, cmd)
	m.timer.Timeout = 3 * time.Minute

	m, _ = press(t, m, "r")
	assert.False(t, m.timerStarted)
	assert.Equal(t, 25*time.Minute, m.timer.Timeout)
	assert.Equal(t, "Focus timer reset", m.status)
}

func TestFocusTimeoutGreetsUser(t *testing.T) {
	m, backend := newTestModel(t)
	backend.SetProfile(model.Profile{Username: "ada"})
	m = start(t, m)

	next, _ := m.Update(timer.TimeoutMsg{ID: m.timer.ID()})
	m = next.(Model)
	assert.Equal(t, "Focus session over. Nice work, ada!", m.status)

	m.profile.Username = ""
	next, _ = m.Update(timer.TimeoutMsg{ID: m.timer.ID()})
	m = next.(Model)
	assert.Contains(t, m.status, "Nice work, "+model.DefaultUsername+"!")
}
