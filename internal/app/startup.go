package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	TaskLists   = "lists"
	TaskProfile = "profile"
	TaskTodos   = "todos"
)

type TaskResult struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

type startupTask struct {
	name string
	run  func(ctx context.Context) error
}

func (s *Service) startupTasks() []startupTask {
	tasks := []startupTask{
		{name: TaskLists, run: func(ctx context.Context) error {
			lists, err := s.remote.FetchLists(ctx)
			if err != nil {
				return err
			}
			s.state.SetLists(lists)
			return nil
		}},
		{name: TaskProfile, run: func(ctx context.Context) error {
			p, err := s.remote.FetchProfile(ctx)
			if err != nil {
				return err
			}
			s.state.SetProfile(p)
			return nil
		}},
	}
	if s.mirror != nil {
		tasks = append(tasks, startupTask{name: TaskTodos, run: func(context.Context) error {
			todos, err := s.mirror.Load()
			s.state.MergeTodos(todos)
			return err
		}})
	}
	return tasks
}

// Startup runs the initial-load tasks once, concurrently. A failing task
// leaves its part of the state at the defaults and does not stop the others.
// Later calls return the first run's results.
func (s *Service) Startup(ctx context.Context) []TaskResult {
	s.startOnce.Do(func() {
		tasks := s.startupTasks()
		results := make([]TaskResult, len(tasks))

		var g errgroup.Group
		for i, task := range tasks {
			g.Go(func() error {
				start := time.Now()
				err := task.run(ctx)
				if err != nil {
					err = fmt.Errorf("startup %s: %w", task.name, err)
					s.logger.Error("startup task failed", "task", task.name, "err", err)
				} else {
					s.logger.Debug("startup task done", "task", task.name)
				}
				results[i] = TaskResult{Name: task.name, Err: err, Elapsed: time.Since(start)}
				return nil
			})
		}
		_ = g.Wait()
		s.startRes = results
	})
	return slices.Clone(s.startRes)
}

// Failed filters results down to the tasks that returned an error.
func Failed(results []TaskResult) []TaskResult {
	var out []TaskResult
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
