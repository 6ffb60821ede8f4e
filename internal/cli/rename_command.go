package cli

import (
	"context"
	"fmt"
	"strings"

	"todo-store/internal/errors"
	"todo-store/internal/services"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	app          *App
	service      *services.TaskService
	errorHandler *ErrorHandler
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(app *App) *RenameCommand {
	return &RenameCommand{
		app:          app,
		service:      app.service,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "rename", "usage: todo rename <id> \"new name\"")
	}
	id := args[0]
	newName := strings.Join(args[1:], " ")

	task, err := c.service.GetTask(ctx, id)
	if err != nil {
		return c.errorHandler.HandleLookup("rename task", id, err)
	}
	oldName := task.TaskName

	if err := c.service.UpdateTask(ctx, task, newName); err != nil {
		return c.errorHandler.HandleLookup("rename task", id, err)
	}

	fmt.Fprintf(c.app.out, "Renamed task %s: %s -> %s\n", task.ID, oldName, task.TaskName)
	return nil
}
