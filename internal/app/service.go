// Package app composes the remote client, the committed state and the local
// to-do mirror. Remote operations change state only after the backend has
// accepted them; every failure is returned to the caller.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"momentum/internal/model"
	"momentum/internal/state"
)

// Remote is the backend surface the service needs.
type Remote interface {
	FetchLists(ctx context.Context) ([]model.TodoList, error)
	FetchProfile(ctx context.Context) (model.Profile, error)
	AddList(ctx context.Context, draft model.TodoList) (model.TodoList, error)
	RemoveList(ctx context.Context, id string) error
	UpdateBackground(ctx context.Context, typ model.BackgroundType, value string) (model.Profile, error)
	UpdateCustomBackgroundColors(ctx context.Context, colors []string) (model.Profile, error)
	UpdateUsername(ctx context.Context, username string) (model.Profile, error)
}

// Mirror persists the local to-do array.
type Mirror interface {
	Load() ([]string, error)
	Save(todos []string) error
}

type Service struct {
	remote Remote
	state  *state.Store
	mirror Mirror
	logger *log.Logger

	startOnce sync.Once
	startRes  []TaskResult
}

type Option func(*Service)

func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMirror enables local persistence of the to-do array.
func WithMirror(m Mirror) Option {
	return func(s *Service) { s.mirror = m }
}

func NewService(remote Remote, st *state.Store, opts ...Option) *Service {
	s := &Service{
		remote: remote,
		state:  st,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) State() *state.Store { return s.state }

// AttachMirror writes the to-do array through the mirror on every change.
// The mirror itself refuses writes until its initial Load has run.
func (s *Service) AttachMirror() (detach func()) {
	if s.mirror == nil {
		return func() {}
	}
	return s.state.Subscribe(func(c state.Change) {
		if c != state.ChangeTodos {
			return
		}
		if err := s.mirror.Save(s.state.Todos()); err != nil {
			s.logger.Error("persist todos", "err", err)
		}
	})
}

func (s *Service) AddList(ctx context.Context) (model.TodoList, error) {
	created, err := s.remote.AddList(ctx, model.NewListDraft())
	if err != nil {
		return model.TodoList{}, err
	}
	s.state.AppendList(created)
	s.logger.Info("list added", "id", created.ID, "title", created.Title)
	return created, nil
}

func (s *Service) RemoveList(ctx context.Context, id string) error {
	if err := s.remote.RemoveList(ctx, id); err != nil {
		return err
	}
	s.state.RemoveList(id)
	s.logger.Info("list removed", "id", id)
	return nil
}

func (s *Service) CommitUsername(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if _, err := s.remote.UpdateUsername(ctx, username); err != nil {
		return err
	}
	s.state.SetUsername(username)
	return nil
}

func (s *Service) CommitBackground(ctx context.Context, typ model.BackgroundType, value string) error {
	if _, ok := model.ParseBackgroundType(string(typ)); !ok {
		return fmt.Errorf("commit background: unknown type %q", typ)
	}
	if _, err := s.remote.UpdateBackground(ctx, typ, value); err != nil {
		return err
	}
	s.state.SetBackground(typ, value)
	s.logger.Debug("background committed", "type", typ, "value", value)
	return nil
}

// AddCustomColor appends a colour to the palette. Duplicates are kept.
func (s *Service) AddCustomColor(ctx context.Context, color string) error {
	normalized, err := model.NormalizeColor(color)
	if err != nil {
		return err
	}
	return s.putColors(ctx, model.AddColor(s.state.Profile().CustomBackgroundColors, normalized))
}

// RemoveCustomColor drops every palette entry equal to color.
func (s *Service) RemoveCustomColor(ctx context.Context, color string) error {
	return s.putColors(ctx, model.RemoveColor(s.state.Profile().CustomBackgroundColors, color))
}

func (s *Service) putColors(ctx context.Context, colors []string) error {
	if _, err := s.remote.UpdateCustomBackgroundColors(ctx, colors); err != nil {
		return err
	}
	s.state.SetCustomColors(colors)
	return nil
}

func (s *Service) AddTodo(text string) bool {
	return s.state.AddTodo(text)
}

func (s *Service) RemoveTodo(index int) bool {
	return s.state.RemoveTodo(index)
}
