// Package state holds the committed application state. Update methods are
// the only way to change it; subscribers are told which part changed.
package state

import (
	"slices"
	"strings"
	"sync"

	"momentum/internal/model"
)

type Change int

const (
	ChangeLists Change = iota + 1
	ChangeProfile
	ChangeTodos
)

func (c Change) String() string {
	switch c {
	case ChangeLists:
		return "lists"
	case ChangeProfile:
		return "profile"
	case ChangeTodos:
		return "todos"
	default:
		return "unknown"
	}
}

type Store struct {
	mu      sync.RWMutex
	lists   []model.TodoList
	profile model.Profile
	todos   []string

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int
}

func New() *Store {
	return &Store{
		lists:   []model.TodoList{},
		profile: model.DefaultProfile(),
		todos:   []string{},
		subs:    map[int]func(Change){},
	}
}

// Subscribe registers fn for every change. Callbacks run synchronously after
// the state lock is released, in no particular order.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

func (s *Store) Lists() []model.TodoList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TodoList, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, l.Clone())
	}
	return out
}

// SetLists replaces the list cache wholesale.
func (s *Store) SetLists(lists []model.TodoList) {
	cp := make([]model.TodoList, 0, len(lists))
	for _, l := range lists {
		cp = append(cp, l.Clone())
	}
	s.mu.Lock()
	s.lists = cp
	s.mu.Unlock()
	s.notify(ChangeLists)
}

func (s *Store) AppendList(l model.TodoList) {
	s.mu.Lock()
	s.lists = append(s.lists, l.Clone())
	s.mu.Unlock()
	s.notify(ChangeLists)
}

// RemoveList filters the cache by id and reports whether anything matched.
func (s *Store) RemoveList(id string) bool {
	s.mu.Lock()
	before := len(s.lists)
	s.lists = slices.DeleteFunc(s.lists, func(l model.TodoList) bool { return l.ID == id })
	removed := len(s.lists) != before
	s.mu.Unlock()
	if removed {
		s.notify(ChangeLists)
	}
	return removed
}

func (s *Store) Profile() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Normalize()
}

func (s *Store) SetProfile(p model.Profile) {
	s.mu.Lock()
	s.profile = p.Normalize()
	s.mu.Unlock()
	s.notify(ChangeProfile)
}

func (s *Store) SetUsername(name string) {
	s.mu.Lock()
	s.profile.Username = name
	s.mu.Unlock()
	s.notify(ChangeProfile)
}

func (s *Store) SetBackground(typ model.BackgroundType, value string) {
	s.mu.Lock()
	s.profile.BackgroundType = typ
	s.profile.BackgroundValue = value
	s.mu.Unlock()
	s.notify(ChangeProfile)
}

func (s *Store) SetCustomColors(colors []string) {
	cp := slices.Clone(colors)
	if cp == nil {
		cp = []string{}
	}
	s.mu.Lock()
	s.profile.CustomBackgroundColors = cp
	s.mu.Unlock()
	s.notify(ChangeProfile)
}

func (s *Store) Todos() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.todos)
}

func (s *Store) SetTodos(todos []string) {
	cp := slices.Clone(todos)
	if cp == nil {
		cp = []string{}
	}
	s.mu.Lock()
	s.todos = cp
	s.mu.Unlock()
	s.notify(ChangeTodos)
}

// MergeTodos puts loaded ahead of the to-dos already in the store, so items
// added before the initial load survive it.
func (s *Store) MergeTodos(loaded []string) {
	s.mu.Lock()
	merged := make([]string, 0, len(loaded)+len(s.todos))
	merged = append(merged, loaded...)
	merged = append(merged, s.todos...)
	s.todos = merged
	s.mu.Unlock()
	s.notify(ChangeTodos)
}

// AddTodo appends text unless it is blank. The text is stored as typed.
func (s *Store) AddTodo(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	s.mu.Lock()
	s.todos = append(s.todos, text)
	s.mu.Unlock()
	s.notify(ChangeTodos)
	return true
}

func (s *Store) RemoveTodo(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.todos) {
		s.mu.Unlock()
		return false
	}
	s.todos = slices.Delete(s.todos, index, index+1)
	s.mu.Unlock()
	s.notify(ChangeTodos)
	return true
}
