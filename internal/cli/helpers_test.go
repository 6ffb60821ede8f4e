package cli

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"todo-store/internal/config"
	"todo-store/internal/services"
)

var todoEnvVars = []string{
	"TODO_DB_BACKEND",
	"TODO_DB_DIR",
	"TODO_DB_FILENAME",
	"TODO_DB_BUCKET",
	"TODO_DB_QUERY_TIMEOUT",
	"TODO_DB_DIR_PERMISSIONS",
	"TODO_QUERY_WINDOW",
	"TODO_LOG_LEVEL",
	"TODO_LOG_ENCODING",
	"TODO_APP_TIMEOUT",
	"TODO_DEBUG",
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range todoEnvVars {
		t.Setenv(key, "")
	}
	t.Setenv("TODO_DB_DIR", t.TempDir())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// sequentialIDs yields task-1, task-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

// setupTestService creates a service over an in-memory store
func setupTestService(t *testing.T) *services.TaskService {
	t.Helper()
	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return services.NewTaskService(repo, services.WithIDGenerator(sequentialIDs()))
}

// setupTestApp creates an App writing into the returned buffer
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return NewApp(setupTestService(t), out), out
}

// testRoot wraps a RootCommand sharing one in-memory service across runs
type testRoot struct {
	service *services.TaskService
	configs []*config.Config
}

func newTestRoot(t *testing.T) *testRoot {
	t.Helper()
	isolateEnv(t)
	return &testRoot{service: setupTestService(t)}
}

func (tr *testRoot) factory(cfg *config.Config) (*services.TaskService, io.Closer, error) {
	tr.configs = append(tr.configs, cfg)
	return tr.service, nopCloser{}, nil
}

// run executes one command line and returns what it printed
func (tr *testRoot) run(args ...string) (string, error) {
	root := NewRootCommand(config.NewLoader().WithEnvFile(""), tr.factory)
	out := &bytes.Buffer{}
	root.Command().SetOut(out)
	root.Command().SetErr(io.Discard)
	root.Command().SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
