package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

const TodosKey = "todos"

// ErrNotInitialized is returned by Save until the first Load has completed.
var ErrNotInitialized = errors.New("todo mirror: initial load has not completed")

// KV is the subset of Store the mirror needs.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// TodoMirror persists the local to-do array under a single key as a JSON
// array of strings. Writes are refused until the initial read has run so an
// empty in-memory array never clobbers what was stored.
type TodoMirror struct {
	kv  KV
	key string

	mu          sync.Mutex
	initialized bool
}

func NewTodoMirror(kv KV) *TodoMirror {
	return &TodoMirror{kv: kv, key: TodosKey}
}

// Load reads the stored array. A missing key yields an empty array. The
// mirror counts as initialized afterwards whatever the outcome.
func (m *TodoMirror) Load() ([]string, error) {
	defer func() {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
	}()

	raw, ok, err := m.kv.Get(m.key)
	if err != nil {
		return []string{}, fmt.Errorf("read %s: %w", m.key, err)
	}
	if !ok || raw == "" {
		return []string{}, nil
	}
	var todos []string
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		return []string{}, fmt.Errorf("parse %s: %w", m.key, err)
	}
	if todos == nil {
		todos = []string{}
	}
	return todos, nil
}

func (m *TodoMirror) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Save overwrites the stored array.
func (m *TodoMirror) Save(todos []string) error {
	if !m.Initialized() {
		return ErrNotInitialized
	}
	if todos == nil {
		todos = []string{}
	}
	data, err := json.Marshal(todos)
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.key, err)
	}
	if err := m.kv.Put(m.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", m.key, err)
	}
	return nil
}
