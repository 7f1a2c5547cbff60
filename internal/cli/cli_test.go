package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-api/internal/config"
	"task-api/internal/httpapi"
	"task-api/internal/ids"
	"task-api/internal/model"
	"task-api/internal/observability/jsonlog"
	"task-api/internal/store/memorystore"
	"task-api/internal/task"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func startAPI(t *testing.T) *httptest.Server {
	t.Helper()
	st := memorystore.NewTaskStore(ids.New(ids.PolicySequential), memorystore.DefaultSeed())
	ts := httptest.NewServer(httpapi.NewServer(task.NewService(st), jsonlog.Discard()))
	t.Cleanup(ts.Close)
	return ts
}

func runClient(t *testing.T, ts *httptest.Server, args ...string) (string, error) {
	t.Helper()
	return executeCommand(NewRootCmd(), append([]string{"--base-url", ts.URL}, args...)...)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "task-api", root.Use)

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "tasks", "health", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(NewRootCmd(), "version")
	require.NoError(t, err)
	assert.Equal(t, "task-api dev\n", out)
}

func TestHealthCommand(t *testing.T) {
	ts := startAPI(t)

	out, err := runClient(t, ts, "health")
	require.NoError(t, err)
	assert.Equal(t, "healthy\n", out)
}

func TestTasksList(t *testing.T) {
	ts := startAPI(t)

	out, err := runClient(t, ts, "tasks", "list")
	require.NoError(t, err)
	assert.Equal(t,
		"   1  [ ] Learn FastAPI\n"+
			"   2  [ ] Deploy to Azure\n"+
			"   3  [x] Create CI/CD pipeline\n",
		out)
}

func TestTasksList_Filters(t *testing.T) {
	ts := startAPI(t)

	out, err := runClient(t, ts, "tasks", "list", "--done")
	require.NoError(t, err)
	assert.Equal(t, "   3  [x] Create CI/CD pipeline\n", out)

	out, err = runClient(t, ts, "tasks", "ls", "--pending", "--match", "Deploy*")
	require.NoError(t, err)
	assert.Equal(t, "   2  [ ] Deploy to Azure\n", out)

	_, err = runClient(t, ts, "tasks", "list", "--done", "--pending")
	require.Error(t, err)
}

func TestTasksLifecycle(t *testing.T) {
	ts := startAPI(t)

	out, err := runClient(t, ts, "tasks", "add", "Write", "release", "notes")
	require.NoError(t, err)
	assert.Equal(t, "   4  [ ] Write release notes\n", out)

	out, err = runClient(t, ts, "tasks", "done", "4")
	require.NoError(t, err)
	assert.Equal(t, "   4  [x] Write release notes\n", out)

	out, err = runClient(t, ts, "tasks", "rename", "4", "Publish", "notes")
	require.NoError(t, err)
	assert.Equal(t, "   4  [x] Publish notes\n", out)

	out, err = runClient(t, ts, "tasks", "undo", "4")
	require.NoError(t, err)
	assert.Equal(t, "   4  [ ] Publish notes\n", out)

	out, err = runClient(t, ts, "tasks", "rm", "4")
	require.NoError(t, err)
	assert.Equal(t, "deleted    4  [ ] Publish notes\n", out)

	_, err = runClient(t, ts, "tasks", "done", "4")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTasks_InvalidID(t *testing.T) {
	ts := startAPI(t)

	_, err := runClient(t, ts, "tasks", "rm", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid task id "abc"`)
}

func TestInvalidConfigRejected(t *testing.T) {
	_, err := executeCommand(NewRootCmd(), "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestRunServe_ServesAndShutsDown(t *testing.T) {
	port := freePort(t)
	cfg := config.Config{
		HTTP: config.HTTPConfig{
			Host:              "127.0.0.1",
			Port:              port,
			ReadHeaderTimeout: time.Second,
			ShutdownTimeout:   time.Second,
		},
		Tasks: config.TasksConfig{IDPolicy: "monotonic"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, cfg, jsonlog.Discard()) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && bytes.Contains(body, []byte("healthy"))
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServe did not return after cancel")
	}
}

func TestNewHTTPServer_UsesIDPolicy(t *testing.T) {
	cfg := config.Config{
		HTTP:  config.HTTPConfig{Host: "127.0.0.1", Port: 8000},
		Tasks: config.TasksConfig{IDPolicy: "monotonic"},
	}
	srv, err := newHTTPServer(cfg, jsonlog.Discard())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8000", srv.Addr)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	out, err := runClient(t, ts, "tasks", "rm", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Create CI/CD pipeline")

	out, err = runClient(t, ts, "tasks", "add", "no", "reuse")
	require.NoError(t, err)
	assert.Equal(t, "   4  [ ] no reuse\n", out)
}
