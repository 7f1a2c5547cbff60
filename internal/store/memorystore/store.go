package memorystore

import (
	"fmt"
	"slices"
	"sync"

	"task-api/internal/ids"
	"task-api/internal/model"
)

// TaskStore keeps tasks in insertion order.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []model.Task
	ids   ids.Allocator
}

// DefaultSeed returns the tasks present when the service starts.
func DefaultSeed() []model.Task {
	return []model.Task{
		{ID: 1, Title: "Learn FastAPI", Completed: false},
		{ID: 2, Title: "Deploy to Azure", Completed: false},
		{ID: 3, Title: "Create CI/CD pipeline", Completed: true},
	}
}

func NewTaskStore(alloc ids.Allocator, seed []model.Task) *TaskStore {
	if alloc == nil {
		alloc = ids.New(ids.PolicySequential)
	}
	s := &TaskStore{
		tasks: make([]model.Task, 0, len(seed)),
		ids:   alloc,
	}
	for _, t := range seed {
		s.tasks = append(s.tasks, t)
		alloc.Observe(t.ID)
	}
	return s
}

func (s *TaskStore) Create(title string, completed bool) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{
		ID:        s.ids.Next(len(s.tasks)),
		Title:     title,
		Completed: completed,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *TaskStore) List() ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *TaskStore) Update(id int, upd model.TaskUpdate) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("update task %d: %w", id, model.ErrNotFound)
	}
	upd.Apply(&s.tasks[i])
	return s.tasks[i], nil
}

func (s *TaskStore) Delete(id int) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("delete task %d: %w", id, model.ErrNotFound)
	}
	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return removed, nil
}

// indexOf returns the first task with the id; duplicate ids are possible
// under the sequential policy.
func (s *TaskStore) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}
