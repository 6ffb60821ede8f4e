package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "todo-store/internal/errors"
)

func TestApp_Run(t *testing.T) {
	app, out := setupTestApp(t)
	ctx := context.Background()

	t.Run("no arguments", func(t *testing.T) {
		err := app.Run(ctx, nil)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})

	t.Run("unknown command", func(t *testing.T) {
		err := app.Run(ctx, []string{"start", "x"})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})

	t.Run("dispatches to handler", func(t *testing.T) {
		out.Reset()
		require.NoError(t, app.Run(ctx, []string{"add", "Buy", "milk"}))
		assert.Equal(t, "Added task task-1: Buy milk\n", out.String())
	})
}

func TestAddCommand_Execute(t *testing.T) {
	app, out := setupTestApp(t)
	cmd := NewAddCommand(app)
	ctx := context.Background()

	t.Run("multiple words are joined", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cmd.Execute(ctx, []string{"Multi", "Word", "Task"}))
		assert.Equal(t, "Added task task-1: Multi Word Task\n", out.String())
	})

	t.Run("empty name saves nothing", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cmd.Execute(ctx, []string{""}))
		assert.Equal(t, "Nothing saved: task name is empty\n", out.String())

		count, err := app.service.CountTasks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("missing argument", func(t *testing.T) {
		err := cmd.Execute(ctx, nil)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})
}

func TestListAndAllCommands(t *testing.T) {
	app, out := setupTestApp(t)
	ctx := context.Background()

	require.NoError(t, NewAddCommand(app).Execute(ctx, []string{"Buy milk"}))
	require.NoError(t, NewAddCommand(app).Execute(ctx, []string{"Walk dog"}))

	t.Run("list applies the fetch filter", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewListCommand(app).Execute(ctx, nil))
		assert.Equal(t, "No tasks found\n", out.String())
	})

	t.Run("all shows every task", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewAllCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "task-1  ")
		assert.Contains(t, out.String(), "  Buy milk\n")
		assert.Contains(t, out.String(), "  Walk dog\n")
	})

	t.Run("arguments are rejected", func(t *testing.T) {
		assert.Error(t, NewListCommand(app).Execute(ctx, []string{"x"}))
		assert.Error(t, NewAllCommand(app).Execute(ctx, []string{"x"}))
	})

	t.Run("list honours cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := NewListCommand(app).Execute(cancelled, nil)
		assert.Error(t, err)
	})
}

func TestRenameCommand_Execute(t *testing.T) {
	app, out := setupTestApp(t)
	ctx := context.Background()
	require.NoError(t, NewAddCommand(app).Execute(ctx, []string{"Buy milk"}))

	t.Run("renames existing task", func(t *testing.T) {
		out.Reset()
		require.NoError(t, NewRenameCommand(app).Execute(ctx, []string{"task-1", "Buy", "oat", "milk"}))
		assert.Equal(t, "Renamed task task-1: Buy milk -> Buy oat milk\n", out.String())

		task, err := app.service.GetTask(ctx, "task-1")
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", task.TaskName)
	})

	t.Run("missing task", func(t *testing.T) {
		err := NewRenameCommand(app).Execute(ctx, []string{"nope", "x"})
		require.Error(t, err)
		assert.Equal(t, `failed to rename task: no task with id nope (run "todo all" to list ids)`, err.Error())
	})

	t.Run("too few arguments", func(t *testing.T) {
		err := NewRenameCommand(app).Execute(ctx, []string{"task-1"})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})
}

func TestDeleteAndCountCommands(t *testing.T) {
	app, out := setupTestApp(t)
	ctx := context.Background()
	require.NoError(t, NewAddCommand(app).Execute(ctx, []string{"keep"}))
	require.NoError(t, NewAddCommand(app).Execute(ctx, []string{"drop"}))

	out.Reset()
	require.NoError(t, NewCountCommand(app).Execute(ctx, nil))
	assert.Equal(t, "2 tasks (2 saved this run)\n", out.String())

	out.Reset()
	require.NoError(t, NewDeleteCommand(app).Execute(ctx, []string{"task-2"}))
	assert.Equal(t, "Deleted task: drop\n", out.String())

	out.Reset()
	require.NoError(t, NewCountCommand(app).Execute(ctx, nil))
	assert.Equal(t, "1 tasks (2 saved this run)\n", out.String())

	err := NewDeleteCommand(app).Execute(ctx, []string{"task-2"})
	require.Error(t, err)
	assert.Equal(t, `failed to delete task: no task with id task-2 (run "todo all" to list ids)`, err.Error())

	err = NewDeleteCommand(app).Execute(ctx, nil)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
}
