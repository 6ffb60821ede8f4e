package cli

import (
	"context"

	"todo-store/internal/errors"
	"todo-store/internal/services"
)

// ListCommand prints the tasks matching the fetch filter
type ListCommand struct {
	app          *App
	service      *services.TaskService
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "list", "list takes no arguments")
	}

	select {
	case result := <-c.service.FetchTasksAsync(ctx):
		if result.Err != nil {
			return c.errorHandler.Handle("list tasks", result.Err)
		}
		printTasks(c.app.out, result.Tasks)
		return nil
	case <-ctx.Done():
		return c.errorHandler.Handle("list tasks", errors.NewTimeoutError("fetch tasks", ctx.Err()))
	}
}

// AllCommand prints every stored task regardless of the fetch filter
type AllCommand struct {
	app          *App
	service      *services.TaskService
	errorHandler *ErrorHandler
}

// NewAllCommand creates a new all command handler
func NewAllCommand(app *App) *AllCommand {
	return &AllCommand{
		app:          app,
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the all command
func (c *AllCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "all", "all takes no arguments")
	}

	tasks, err := c.service.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	printTasks(c.app.out, tasks)
	return nil
}
