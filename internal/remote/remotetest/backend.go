// Package remotetest provides an in-memory to-do/profile backend for tests.
package remotetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"momentum/internal/model"
)

type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Backend serves the REST surface the client consumes and records every
// request it receives.
type Backend struct {
	mu         sync.Mutex
	lists      []model.TodoList
	profile    model.Profile
	omitColors bool
	failures   map[string]int
	requests   []Request

	router *mux.Router
}

func NewBackend() *Backend {
	b := &Backend{
		lists:    []model.TodoList{},
		profile:  model.DefaultProfile(),
		failures: map[string]int{},
	}
	r := mux.NewRouter()
	r.Use(b.record)
	r.HandleFunc("/todos", b.listTodos).Methods(http.MethodGet)
	r.HandleFunc("/todos", b.createTodo).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id}", b.deleteTodo).Methods(http.MethodDelete)
	r.HandleFunc("/userprofile", b.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/userprofile/background", b.putBackground).Methods(http.MethodPut)
	r.HandleFunc("/userprofile/custombackgroundcolors", b.putColors).Methods(http.MethodPut)
	r.HandleFunc("/userprofile/username", b.putUsername).Methods(http.MethodPut)
	b.router = r
	return b
}

// NewServer starts an httptest server for a fresh Backend and closes it when
// the test ends.
func NewServer(t testing.TB) (*Backend, *httptest.Server) {
	t.Helper()
	b := NewBackend()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *Backend) Handler() http.Handler { return b.router }

func (b *Backend) SetLists(lists ...model.TodoList) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists = make([]model.TodoList, 0, len(lists))
	for _, l := range lists {
		b.lists = append(b.lists, l.Clone())
	}
}

func (b *Backend) Lists() []model.TodoList {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.TodoList, 0, len(b.lists))
	for _, l := range b.lists {
		out = append(out, l.Clone())
	}
	return out
}

func (b *Backend) SetProfile(p model.Profile) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profile = p.Normalize()
}

func (b *Backend) Profile() model.Profile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.Normalize()
}

// OmitCustomColors makes GET /userprofile leave out customBackgroundColors.
func (b *Backend) OmitCustomColors(omit bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.omitColors = omit
}

// Fail makes every request matching method and path answer with status.
func (b *Backend) Fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = status
}

func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.failures)
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.requests)
}

func (b *Backend) RequestsFor(method, path string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, Request{Method: r.Method, Path: r.URL.Path, Body: body})
		status, fail := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if fail {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) listTodos(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, b.Lists())
}

func (b *Backend) createTodo(w http.ResponseWriter, r *http.Request) {
	var in model.TodoList
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created := in.Clone()
	created.ID = uuid.NewString()

	b.mu.Lock()
	b.lists = append(b.lists, created)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (b *Backend) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b.mu.Lock()
	idx := slices.IndexFunc(b.lists, func(l model.TodoList) bool { return l.ID == id })
	if idx >= 0 {
		b.lists = slices.Delete(b.lists, idx, idx+1)
	}
	b.mu.Unlock()

	if idx < 0 {
		http.Error(w, "list not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) getProfile(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	p := b.profile.Normalize()
	omit := b.omitColors
	b.mu.Unlock()

	if omit {
		writeJSON(w, http.StatusOK, map[string]any{
			"username":        p.Username,
			"backgroundType":  p.BackgroundType,
			"backgroundValue": p.BackgroundValue,
		})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) putBackground(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Type  model.BackgroundType `json:"type"`
		Value string               `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := model.ParseBackgroundType(string(in.Type)); !ok {
		http.Error(w, "unknown background type", http.StatusBadRequest)
		return
	}
	b.updateProfile(w, func(p *model.Profile) {
		p.BackgroundType = in.Type
		p.BackgroundValue = in.Value
	})
}

func (b *Backend) putColors(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CustomBackgroundColors []string `json:"customBackgroundColors"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.updateProfile(w, func(p *model.Profile) {
		p.CustomBackgroundColors = in.CustomBackgroundColors
	})
}

func (b *Backend) putUsername(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.updateProfile(w, func(p *model.Profile) {
		p.Username = in.Username
	})
}

func (b *Backend) updateProfile(w http.ResponseWriter, apply func(*model.Profile)) {
	b.mu.Lock()
	apply(&b.profile)
	b.profile = b.profile.Normalize()
	p := b.profile
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
