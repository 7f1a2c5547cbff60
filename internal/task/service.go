package task

import "task-api/internal/model"

type Service struct {
	repo TaskRepository
}

func NewService(repo TaskRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]model.Task, error) {
	return s.repo.List()
}

func (s *Service) Create(in model.TaskCreate) (model.Task, error) {
	title, completed, err := ValidateCreate(in)
	if err != nil {
		return model.Task{}, err
	}
	return s.repo.Create(title, completed)
}

func (s *Service) Update(id int, upd model.TaskUpdate) (model.Task, error) {
	return s.repo.Update(id, upd)
}

func (s *Service) Delete(id int) (model.Task, error) {
	return s.repo.Delete(id)
}
