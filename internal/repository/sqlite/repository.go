package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"todo-store/internal/domain"
	"todo-store/internal/errors"
	"todo-store/internal/query"
	"todo-store/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

var _ repository.Repository = (*SQLiteRepository)(nil)

// SQLiteRepository implements repository.Repository on an embedded SQLite database
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	logger       *zap.Logger
}

// Option configures a SQLiteRepository
type Option func(*SQLiteRepository)

// WithQueryTimeout bounds every statement; zero disables the bound
func WithQueryTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) {
		r.queryTimeout = d
	}
}

// WithLogger sets the logger used for statement tracing
func WithLogger(logger *zap.Logger) Option {
	return func(r *SQLiteRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a new SQLite repository instance and ensures the schema exists
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("create schema", err)
	}

	r := &SQLiteRepository{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger.Debug("sqlite task store opened", zap.String("path", dbPath))
	return r, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// CreateTask inserts a new task. The caller assigns the ID.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?)`

	return Execute(ctx, r.db, "create task", query,
		task.ID,
		task.TaskName,
		FormatIntPtrForDB(task.Number),
		FormatTimePtrForDB(task.DateStart),
		FormatTimePtrForDB(task.DateEnd),
		FormatBoolPtrForDB(task.IsActive),
	)
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
}

// ListTasks retrieves all tasks ordered by start date
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY date_start ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// FetchTasks retrieves the tasks matching filter ordered by start date
func (r *SQLiteRepository) FetchTasks(ctx context.Context, filter query.Expr) ([]*domain.Task, error) {
	where, args, err := CompileFilter(filter)
	if err != nil {
		return nil, errors.NewStoreReadError("compile task filter", err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	stmt := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where + ` ORDER BY date_start ASC, id ASC`
	r.logger.Debug("fetching tasks", zap.String("where", where), zap.Int("args", len(args)))
	return QueryMultiple(ctx, r.db, stmt, ScanTasks, "tasks", args...)
}

// CountTasks returns the number of stored tasks
func (r *SQLiteRepository) CountTasks(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, HandleReadError("count tasks", err)
	}
	return count, nil
}

// UpdateTask persists every mutable field of an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE tasks
	SET task_name = ?, number = ?, date_start = ?, date_end = ?, is_active = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", task.ID,
		task.TaskName,
		FormatIntPtrForDB(task.Number),
		FormatTimePtrForDB(task.DateStart),
		FormatTimePtrForDB(task.DateEnd),
		FormatBoolPtrForDB(task.IsActive),
		task.ID,
	)
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id)
}
