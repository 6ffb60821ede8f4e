package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"todo-store/internal/domain"
	"todo-store/internal/errors"
	"todo-store/internal/services"
)

// displayTimeFormat is used when printing task timestamps
const displayTimeFormat = "2006-01-02 15:04:05"

// App represents the main CLI application
type App struct {
	service  *services.TaskService
	out      io.Writer
	registry *CommandRegistry
}

// NewApp creates a new CLI application writing command output to out
func NewApp(service *services.TaskService, out io.Writer) *App {
	app := &App{
		service: service,
		out:     out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the command named by args[0] with the remaining arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", "no command given")
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// printTasks prints one line per task: id, start time and name
func printTasks(out io.Writer, tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found")
		return
	}
	for _, task := range tasks {
		fmt.Fprintf(out, "%s  %s  %s\n", task.ID, formatTime(task.DateStart), task.TaskName)
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(displayTimeFormat)
}
