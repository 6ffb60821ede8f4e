package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-store/internal/domain"
	"todo-store/internal/errors"
	"todo-store/internal/logging"
	"todo-store/internal/query"
	"todo-store/internal/repository"
)

// FetchResult carries the outcome of an asynchronous fetch: either Tasks or Err.
type FetchResult struct {
	Tasks []*domain.Task
	Err   error
}

// TaskService handles the task lifecycle on top of a repository
type TaskService struct {
	repo      repository.Repository
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
	window    WindowSource
	saveCount atomic.Int64
}

// Option configures a TaskService
type Option func(*TaskService)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *TaskService) { s.logger = logging.OrNop(logger) }
}

// WithClock overrides the clock used to stamp DateStart
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how task ids are generated
func WithIDGenerator(newID func() string) Option {
	return func(s *TaskService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithWindowSource overrides the window used by FetchTasks
func WithWindowSource(source WindowSource) Option {
	return func(s *TaskService) {
		if source != nil {
			s.window = source
		}
	}
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Repository, opts ...Option) *TaskService {
	s := &TaskService{
		repo:   repo,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
		window: StaticWindow(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveTask stores a new task named taskName, stamped with the current time.
// An empty name is ignored: nothing is stored and no error is returned.
func (s *TaskService) SaveTask(ctx context.Context, taskName string) (*domain.Task, error) {
	if taskName == "" {
		return nil, nil
	}
	s.saveCount.Add(1)

	task := domain.NewTask(s.newID(), taskName, s.now())
	if err := s.repo.CreateTask(ctx, &task); err != nil {
		return nil, err
	}

	s.logger.Debug("task saved", zap.String("id", task.ID), zap.String("task_name", task.TaskName))
	return &task, nil
}

// SaveCount returns how many non-empty SaveTask calls this service has handled
func (s *TaskService) SaveCount() int {
	return int(s.saveCount.Load())
}

// UpdateTask renames task in place and persists the change. Every holder of
// the pointer sees the new name, even if persisting fails.
func (s *TaskService) UpdateTask(ctx context.Context, task *domain.Task, newTaskName string) error {
	if task == nil {
		return errors.NewInvalidInputError("task", nil, "must not be nil")
	}
	task.TaskName = newTaskName

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return err
	}

	s.logger.Debug("task renamed", zap.String("id", task.ID), zap.String("task_name", newTaskName))
	return nil
}

// DeleteTask removes task from the store
func (s *TaskService) DeleteTask(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return errors.NewInvalidInputError("task", nil, "must not be nil")
	}
	if err := s.repo.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	s.logger.Debug("task deleted", zap.String("id", task.ID))
	return nil
}

// Filter returns the fetch filter for the current window
func (s *TaskService) Filter() query.Expr {
	return query.TaskFilter(s.window())
}

// FetchTasks returns the active tasks with both dates set that overlap the
// current window. The result is never nil on success.
func (s *TaskService) FetchTasks(ctx context.Context) ([]*domain.Task, error) {
	filter := s.Filter()

	tasks, err := s.repo.FetchTasks(ctx, filter)
	if err != nil {
		if errors.ShouldLogError(err) {
			s.logger.Error("fetch tasks failed",
				zap.String("code", errors.GetErrorCode(err)),
				zap.Stringer("filter", filter),
				zap.Error(err),
			)
		}
		return nil, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	s.logger.Debug("tasks fetched", zap.Int("count", len(tasks)))
	return tasks, nil
}

// FetchTasksAsync runs FetchTasks on its own goroutine. The channel receives
// exactly one result and is then closed.
func (s *TaskService) FetchTasksAsync(ctx context.Context) <-chan FetchResult {
	out := make(chan FetchResult, 1)
	go func() {
		defer close(out)
		tasks, err := s.FetchTasks(ctx)
		out <- FetchResult{Tasks: tasks, Err: err}
	}()
	return out
}

// GetTask retrieves a task by its ID
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if id == "" {
		return nil, errors.NewInvalidInputError("id", id, "must not be empty")
	}
	return s.repo.GetTask(ctx, id)
}

// ListTasks returns every stored task, ignoring the fetch filter
func (s *TaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.repo.ListTasks(ctx)
}

// CountTasks returns the number of stored tasks
func (s *TaskService) CountTasks(ctx context.Context) (int, error) {
	return s.repo.CountTasks(ctx)
}
