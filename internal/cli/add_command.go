package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-store/internal/errors"
	"todo-store/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	service      *services.TaskService
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: todo add \"task name\"")
	}
	taskName := strings.Join(args, " ")

	task, err := c.service.SaveTask(ctx, taskName)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	if task == nil {
		// Empty names are silently ignored by the service.
		fmt.Fprintln(c.app.out, "Nothing saved: task name is empty")
		return nil
	}

	fmt.Fprintf(c.app.out, "Added task %s: %s\n", task.ID, task.TaskName)
	return nil
}
