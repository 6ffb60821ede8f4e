package cli

import (
	"context"
	"fmt"

	"todo-store/internal/errors"
	"todo-store/internal/services"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	service      *services.TaskService
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{
		app:          app,
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: todo delete <id>")
	}

	id := args[0]
	task, err := c.service.GetTask(ctx, id)
	if err != nil {
		return c.errorHandler.HandleLookup("delete task", id, err)
	}
	if err := c.service.DeleteTask(ctx, task); err != nil {
		return c.errorHandler.HandleLookup("delete task", id, err)
	}

	fmt.Fprintf(c.app.out, "Deleted task: %s\n", task.TaskName)
	return nil
}

// CountCommand prints the number of stored tasks
type CountCommand struct {
	app          *App
	service      *services.TaskService
	errorHandler *ErrorHandler
}

// NewCountCommand creates a new count command handler
func NewCountCommand(app *App) *CountCommand {
	return &CountCommand{
		app:          app,
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the count command
func (c *CountCommand) Execute(ctx context.Context, args []string) error {
	count, err := c.service.CountTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("count tasks", err)
	}
	fmt.Fprintf(c.app.out, "%d tasks (%d saved this run)\n", count, c.service.SaveCount())
	return nil
}
