package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"flowstate.app/flowstate-api/internal/constants"
	dto "flowstate.app/flowstate-api/internal/data_models"
	"flowstate.app/flowstate-api/internal/errors"
	model "flowstate.app/flowstate-api/internal/models"
	"flowstate.app/flowstate-api/internal/storage"
)

// TaskRepository enforces the task invariants (id assignment, enum
// validation, defaults) over the collection held by the store.
//
// Every mutation runs a full load-mutate-save cycle; mu serializes those
// cycles so two concurrent writers cannot silently discard each other's
// change through the shared file.
type TaskRepository struct {
	store *storage.Store
	mu    sync.Mutex
}

func NewTaskRepository(store *storage.Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// List returns the tasks matching filter, newest first.
func (r *TaskRepository) List(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error) {
	tasks, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if matchesFilter(task, filter) {
			filtered = append(filtered, task)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return filtered, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int) (*model.Task, error) {
	tasks, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	for _, task := range tasks {
		if task.ID == id {
			return &task, nil
		}
	}
	return nil, errors.ErrTaskNotFound
}

// Create validates the request, assigns the next id, applies defaults
// and persists the grown collection.
func (r *TaskRepository) Create(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := model.Task{
		ID:            nextID(tasks),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      strings.TrimSpace(req.Category),
		Priority:      defaultPriority(req.Priority),
		DueDate:       req.DueDate,
		EstimatedTime: req.EstimatedTime,
		AssignedTo:    defaultAssignee(req.AssignedTo),
		Tags:          strings.TrimSpace(req.Tags),
		Status:        defaultStatus(req.Status),
		Completed:     req.Completed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tasks = append(tasks, task)
	if err := r.store.Save(tasks); err != nil {
		return nil, err
	}

	return &task, nil
}

// Update merges the partial request over the stored task. Fields absent
// from the request are untouched; setting status to completed also marks
// the task completed.
func (r *TaskRepository) Update(ctx context.Context, id int, req dto.UpdateTaskRequest) (*model.Task, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil, errors.ErrTaskNotFound
	}

	merge(&tasks[idx], req)
	tasks[idx].UpdatedAt = time.Now()

	if err := r.store.Save(tasks); err != nil {
		return nil, err
	}

	updated := tasks[idx]
	return &updated, nil
}

// Delete removes the task with the given id. Hard delete, no tombstone.
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.Load()
	if err != nil {
		return err
	}

	idx := indexOf(tasks, id)
	if idx < 0 {
		return errors.ErrTaskNotFound
	}

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	return r.store.Save(tasks)
}

func validateCreate(req dto.CreateTaskRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.ErrTitleRequired
	}
	if req.DueDate == "" {
		return errors.ErrDueDateRequired
	}
	if req.Priority != "" && !constants.TaskPriority(req.Priority).Valid() {
		return errors.ErrInvalidPriority
	}
	if req.Status != "" && !constants.TaskStatus(req.Status).Valid() {
		return errors.ErrInvalidStatus
	}
	return nil
}

func validateUpdate(req dto.UpdateTaskRequest) error {
	if req.Priority != nil && !constants.TaskPriority(*req.Priority).Valid() {
		return errors.ErrInvalidPriority
	}
	if req.Status != nil && !constants.TaskStatus(*req.Status).Valid() {
		return errors.ErrInvalidStatus
	}
	return nil
}

func merge(task *model.Task, req dto.UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		task.Category = strings.TrimSpace(*req.Category)
	}
	if req.Priority != nil {
		task.Priority = constants.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.EstimatedTime != nil {
		task.EstimatedTime = *req.EstimatedTime
	}
	if req.AssignedTo != nil {
		task.AssignedTo = strings.TrimSpace(*req.AssignedTo)
	}
	if req.Tags != nil {
		task.Tags = strings.TrimSpace(*req.Tags)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Status != nil {
		task.Status = constants.TaskStatus(*req.Status)
		// Moving into completed implies the completion flag, even when
		// the caller did not send it.
		if task.Status == constants.StatusCompleted {
			task.Completed = true
		}
	}
}

func matchesFilter(task model.Task, filter dto.TaskFilter) bool {
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(task.Title), q) &&
			!strings.Contains(strings.ToLower(task.Description), q) &&
			!strings.Contains(strings.ToLower(task.Tags), q) &&
			!strings.Contains(strings.ToLower(task.Category), q) {
			return false
		}
	}
	if filter.Category != "" && task.Category != filter.Category {
		return false
	}
	if filter.Priority != "" && string(task.Priority) != filter.Priority {
		return false
	}
	if filter.Status != "" && string(task.Status) != filter.Status {
		return false
	}
	if filter.Completed != nil && task.Completed != *filter.Completed {
		return false
	}
	return true
}

func indexOf(tasks []model.Task, id int) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func nextID(tasks []model.Task) int {
	max := 0
	for _, task := range tasks {
		if task.ID > max {
			max = task.ID
		}
	}
	return max + 1
}

func defaultPriority(p string) constants.TaskPriority {
	if p == "" {
		return constants.PriorityMedium
	}
	return constants.TaskPriority(p)
}

func defaultStatus(s string) constants.TaskStatus {
	if s == "" {
		return constants.StatusTodo
	}
	return constants.TaskStatus(s)
}

func defaultAssignee(a string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return "Self"
	}
	return a
}
