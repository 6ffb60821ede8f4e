// Package bolt stores tasks as JSON documents in a bbolt bucket keyed by id.
// Filters are evaluated in process with query.Expr.Match.
package bolt

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"todo-store/internal/domain"
	"todo-store/internal/errors"
	"todo-store/internal/query"
	"todo-store/internal/repository"
)

// DefaultBucket holds task documents unless Open is given another name.
const DefaultBucket = "tasks"

var _ repository.Repository = (*Store)(nil)

// Store implements repository.Repository on a bbolt file.
type Store struct {
	db           *bbolt.DB
	bucket       []byte
	queryTimeout time.Duration
	logger       *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithBucket selects the bucket holding task documents
func WithBucket(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.bucket = []byte(name)
		}
	}
}

// WithQueryTimeout bounds every operation; zero disables the bound
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.queryTimeout = d
	}
}

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open initializes the bbolt file and ensures the bucket exists.
// The parent directory must already exist.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		bucket: []byte(DefaultBucket),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("create bucket", err)
	}
	s.db = db

	s.logger.Debug("bolt task store opened",
		zap.String("path", path),
		zap.ByteString("bucket", s.bucket),
		zap.Duration("query_timeout", s.queryTimeout),
	)
	return s, nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// Close closes the bbolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTask inserts a new task; an existing id is rejected.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return errors.FromStore("create task", err)
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return errors.NewDatabaseError("encode task", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(task.ID)) != nil {
			return fmt.Errorf("task id %q already exists", task.ID)
		}
		return b.Put([]byte(task.ID), payload)
	})
	return errors.FromStore("create task", err)
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, errors.FromStore("get task", err)
	}

	var task *domain.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(id))
		if v == nil {
			return errors.NewNotFoundError("task", id)
		}
		decoded, err := decode(v)
		if err != nil {
			return err
		}
		task = decoded
		return nil
	})
	if err != nil {
		return nil, readError("get task", err)
	}
	return task, nil
}

// ListTasks returns every task ordered by start date, then id.
func (s *Store) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.FetchTasks(ctx, query.And{})
}

// FetchTasks returns the tasks matching filter ordered by start date, then id.
func (s *Store) FetchTasks(ctx context.Context, filter query.Expr) ([]*domain.Task, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, errors.FromStore("fetch tasks", err)
	}

	var tasks []*domain.Task
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			task, err := decode(v)
			if err != nil {
				return fmt.Errorf("task %s: %w", k, err)
			}
			if filter.Match(task) {
				tasks = append(tasks, task)
			}
			return nil
		})
	})
	if err != nil {
		return nil, readError("fetch tasks", err)
	}

	sortByStart(tasks)
	s.logger.Debug("fetched tasks", zap.Stringer("filter", filter), zap.Int("matched", len(tasks)))
	return tasks, nil
}

// CountTasks returns the number of stored tasks.
func (s *Store) CountTasks(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return 0, errors.FromStore("count tasks", err)
	}
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, readError("count tasks", err)
	}
	return count, nil
}

// UpdateTask replaces the stored document of an existing task.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return errors.FromStore("update task", err)
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return errors.NewDatabaseError("encode task", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(task.ID)) == nil {
			return errors.NewNotFoundError("task", task.ID)
		}
		return b.Put([]byte(task.ID), payload)
	})
	return errors.FromStore("update task", err)
}

// DeleteTask removes a task by ID.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return errors.FromStore("delete task", err)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(id)) == nil {
			return errors.NewNotFoundError("task", id)
		}
		return b.Delete([]byte(id))
	})
	return errors.FromStore("delete task", err)
}

func decode(v []byte) (*domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal(v, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func readError(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewStoreReadError(operation, err)
}

// sortByStart orders tasks the way the sqlite backend does: unset start dates
// first, then ascending start, ties broken by id.
func sortByStart(tasks []*domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DateStart, tasks[j].DateStart
		switch {
		case a == nil && b != nil:
			return true
		case a != nil && b == nil:
			return false
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
