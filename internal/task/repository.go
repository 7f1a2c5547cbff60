package task

import "task-api/internal/model"

type TaskRepository interface {
	Create(title string, completed bool) (model.Task, error)
	List() ([]model.Task, error)
	Update(id int, upd model.TaskUpdate) (model.Task, error)
	Delete(id int) (model.Task, error)
}
