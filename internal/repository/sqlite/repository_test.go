package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-store/internal/domain"
	apperrors "todo-store/internal/errors"
	"todo-store/internal/query"
	"todo-store/internal/repository"
	"todo-store/internal/repository/repotest"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	dbPath := filepath.Join(t.TempDir(), "todo.db")

	repo, err := New(dbPath)
	require.NoError(t, err)

	return repo
}

func TestSQLiteRepository_Contract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return setupTestDB(t)
	})
}

func TestSQLiteRepository_InMemory(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	task := domain.NewTask("mem-1", "in memory", time.Now())
	require.NoError(t, repo.CreateTask(ctx, &task))

	// Separate statements must see the same database.
	count, err := repo.CountTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteRepository_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "todo.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	task := domain.NewTask("keep", "survives restart", time.Now())
	require.NoError(t, repo.CreateTask(ctx, &task))
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetTask(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "survives restart", got.TaskName)
}

func TestSQLiteRepository_FetchWithInvalidFilter(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	_, err := repo.FetchTasks(context.Background(), query.Compare{Field: "colour", Op: query.OpEq, Value: "red"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStoreRead))
}

func TestSQLiteRepository_ReadAfterCloseIsStoreReadError(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.Close())

	_, err := repo.FetchTasks(context.Background(), query.Active())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStoreRead))
}

func TestSQLiteRepository_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListTasks(ctx)
	assert.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
}

func TestSQLiteRepository_WithQueryTimeout(t *testing.T) {
	repo, err := New(filepath.Join(t.TempDir(), "todo.db"), WithQueryTimeout(5*time.Second), WithLogger(nil))
	require.NoError(t, err)
	defer repo.Close()

	assert.Equal(t, 5*time.Second, repo.queryTimeout)
	assert.NotNil(t, repo.logger)

	count, err := repo.CountTasks(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
