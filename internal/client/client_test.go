package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-api/internal/httpapi"
	"task-api/internal/ids"
	"task-api/internal/model"
	"task-api/internal/observability/jsonlog"
	"task-api/internal/store/memorystore"
	"task-api/internal/task"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	st := memorystore.NewTaskStore(ids.New(ids.PolicySequential), memorystore.DefaultSeed())
	ts := httptest.NewServer(httpapi.NewServer(task.NewService(st), jsonlog.Discard()))
	t.Cleanup(ts.Close)

	c, err := New(ts.URL+"/", WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:8000")
	require.Error(t, err)
}

func TestWithTimeout_CopiesSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c, err := New("http://localhost:8000", WithHTTPClient(shared), WithTimeout(2*time.Second))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
	assert.NotSame(t, shared, c.http)
}

func TestHealth(t *testing.T) {
	c := newClient(t)

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status)
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	tasks, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	created, err := c.Create(ctx, "Write client", false)
	require.NoError(t, err)
	assert.Equal(t, model.Task{ID: 4, Title: "Write client"}, created)

	updated, err := c.Update(ctx, created.ID, model.TaskUpdate{Completed: model.Some(true)})
	require.NoError(t, err)
	assert.Equal(t, model.Task{ID: 4, Title: "Write client", Completed: true}, updated)

	removed, err := c.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, removed)

	_, err = c.Update(ctx, created.ID, model.TaskUpdate{Completed: model.Some(false)})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = c.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"invalid input: title is required"}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL)
	require.NoError(t, err)

	_, err = c.Create(context.Background(), "", false)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "err=%v", err)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "invalid input: title is required", apiErr.Detail)
}
