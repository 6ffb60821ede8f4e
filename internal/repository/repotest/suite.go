// Package repotest holds behaviour tests shared by every repository backend.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-store/internal/domain"
	apperrors "todo-store/internal/errors"
	"todo-store/internal/query"
	"todo-store/internal/repository"
)

// Factory opens an empty repository. The suite closes it.
type Factory func(t *testing.T) repository.Repository

func ptr[T any](v T) *T { return &v }

// Run exercises the repository.Repository contract against backends built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newRepo) })
	t.Run("CreateDuplicateID", func(t *testing.T) { testCreateDuplicateID(t, newRepo) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newRepo) })
	t.Run("ListOrdered", func(t *testing.T) { testListOrdered(t, newRepo) })
	t.Run("Update", func(t *testing.T) { testUpdate(t, newRepo) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newRepo) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newRepo) })
	t.Run("FetchTaskFilter", func(t *testing.T) { testFetchTaskFilter(t, newRepo) })
	t.Run("FetchMatchesInMemoryEvaluation", func(t *testing.T) { testFetchAgreesWithMatch(t, newRepo) })
}

func open(t *testing.T, newRepo Factory) repository.Repository {
	repo := newRepo(t)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testCreateAndGet(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)
	ctx := context.Background()

	start := time.Date(2024, 3, 10, 9, 15, 0, 123456789, time.UTC)
	task := domain.NewTask("id-1", "Buy milk", start)
	require.NoError(t, repo.CreateTask(ctx, &task))

	got, err := repo.GetTask(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Buy milk", got.TaskName)
	require.NotNil(t, got.DateStart)
	assert.True(t, got.DateStart.Equal(start))
	assert.Nil(t, got.DateEnd)
	assert.Nil(t, got.Number)
	assert.Nil(t, got.IsActive)

	count, err := repo.CountTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testCreateDuplicateID(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)
	ctx := context.Background()

	first := domain.NewTask("dup", "first", time.Now())
	require.NoError(t, repo.CreateTask(ctx, &first))

	second := domain.NewTask("dup", "second", time.Now())
	err := repo.CreateTask(ctx, &second)
	assert.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))

	got, err := repo.GetTask(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, "first", got.TaskName)
}

func testGetMissing(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)

	_, err := repo.GetTask(context.Background(), "missing")
	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "not found")
}

func testListOrdered(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)
	ctx := context.Background()

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"third", "first", "second"} {
		offset := map[string]time.Duration{"first": 0, "second": time.Hour, "third": 2 * time.Hour}[name]
		task := domain.NewTask(string(rune('a'+i)), name, base.Add(offset))
		require.NoError(t, repo.CreateTask(ctx, &task))
	}

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].TaskName)
	assert.Equal(t, "second", tasks[1].TaskName)
	assert.Equal(t, "third", tasks[2].TaskName)
}

func testUpdate(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)
	ctx := context.Background()

	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	task := domain.NewTask("id-1", "Buy milk", start)
	require.NoError(t, repo.CreateTask(ctx, &task))

	task.TaskName = "Buy oat milk"
	task.Number = ptr(2)
	task.DateEnd = ptr(start.Add(time.Hour))
	task.IsActive = ptr(true)
	require.NoError(t, repo.UpdateTask(ctx, &task))

	got, err := repo.GetTask(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", got.TaskName)
	require.NotNil(t, got.Number)
	assert.Equal(t, 2, *got.Number)
	require.NotNil(t, got.DateEnd)
	assert.True(t, got.DateEnd.Equal(start.Add(time.Hour)))
	require.NotNil(t, got.IsActive)
	assert.True(t, *got.IsActive)

	count, err := repo.CountTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testUpdateMissing(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)

	task := domain.NewTask("ghost", "nobody", time.Now())
	err := repo.UpdateTask(context.Background(), &task)
	assert.True(t, apperrors.IsNotFound(err))
}

func testDelete(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		task := domain.NewTask(id, "task "+id, time.Now())
		require.NoError(t, repo.CreateTask(ctx, &task))
	}

	require.NoError(t, repo.DeleteTask(ctx, "a"))

	_, err := repo.GetTask(ctx, "a")
	assert.True(t, apperrors.IsNotFound(err))

	count, err := repo.CountTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = repo.DeleteTask(ctx, "a")
	assert.True(t, apperrors.IsNotFound(err))
}

// fixture covers each branch of the task filter.
func fixture(w domain.Window) []domain.Task {
	inside := w.Start.Add(time.Hour)
	before := w.Start.Add(-48 * time.Hour)
	after := w.End.Add(48 * time.Hour)

	return []domain.Task{
		{ID: "saved-only", TaskName: "saved", DateStart: ptr(inside)},
		{ID: "inactive-inside", TaskName: "x", DateStart: ptr(inside), DateEnd: ptr(inside.Add(time.Minute)), IsActive: ptr(false)},
		{ID: "active-inside", TaskName: "x", DateStart: ptr(inside), DateEnd: ptr(inside.Add(time.Minute)), IsActive: ptr(true)},
		{ID: "active-no-end", TaskName: "x", DateStart: ptr(inside), IsActive: ptr(true)},
		{ID: "active-spanning", TaskName: "x", DateStart: ptr(before), DateEnd: ptr(after), IsActive: ptr(true)},
		{ID: "active-ends-inside", TaskName: "x", DateStart: ptr(before), DateEnd: ptr(inside), IsActive: ptr(true)},
		{ID: "active-before", TaskName: "x", DateStart: ptr(before), DateEnd: ptr(before.Add(time.Hour)), IsActive: ptr(true)},
		{ID: "active-after", TaskName: "x", DateStart: ptr(after), DateEnd: ptr(after.Add(time.Hour)), IsActive: ptr(true)},
		{ID: "active-on-bounds", TaskName: "x", DateStart: ptr(w.End), DateEnd: ptr(after), IsActive: ptr(true), Number: ptr(1)},
	}
}

func seed(t *testing.T, repo repository.Repository, tasks []domain.Task) {
	for i := range tasks {
		require.NoError(t, repo.CreateTask(context.Background(), &tasks[i]))
	}
}

func ids(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func testFetchTaskFilter(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)
	w := domain.Window{
		Start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC),
	}
	seed(t, repo, fixture(w))

	got, err := repo.FetchTasks(context.Background(), query.TaskFilter(w))
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"active-inside", "active-spanning", "active-ends-inside", "active-on-bounds"},
		ids(got))
}

func testFetchAgreesWithMatch(t *testing.T, newRepo Factory) {
	repo := open(t, newRepo)
	w := domain.InstantWindow(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	tasks := fixture(w)
	seed(t, repo, tasks)

	filters := []query.Expr{
		query.Active(),
		query.BothDatesPresent(),
		query.RangeOverlap(w),
		query.TaskFilter(w),
		query.Compare{Field: query.FieldNumber, Op: query.OpGe, Value: 1},
		query.Compare{Field: query.FieldDateEnd, Op: query.OpLt, Value: w.Start},
		query.Compare{Field: query.FieldTaskName, Op: query.OpEq, Value: "saved"},
		query.And{},
		query.Or{},
	}

	all := make([]*domain.Task, len(tasks))
	for i := range tasks {
		all[i] = &tasks[i]
	}

	for _, f := range filters {
		t.Run(f.String(), func(t *testing.T) {
			got, err := repo.FetchTasks(context.Background(), f)
			require.NoError(t, err)
			assert.ElementsMatch(t, ids(query.Filter(all, f)), ids(got))
		})
	}
}
