package services

import (
	"context"

	dto "flowstate.app/flowstate-api/internal/data_models"
	model "flowstate.app/flowstate-api/internal/models"
	repository "flowstate.app/flowstate-api/internal/repositories"
)

// TaskService fronts the repository for the HTTP layer.
type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) ListTasks(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *TaskService) GetTask(ctx context.Context, id int) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	return s.repo.Create(ctx, req)
}

func (s *TaskService) UpdateTask(ctx context.Context, id int, req dto.UpdateTaskRequest) (*model.Task, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
