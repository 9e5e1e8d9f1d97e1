package services

import (
	"context"
	"time"

	"flowstate.app/flowstate-api/internal/constants"
	dto "flowstate.app/flowstate-api/internal/data_models"
	repository "flowstate.app/flowstate-api/internal/repositories"
)

// StatsService computes the aggregation snapshot over the current
// collection. Nothing is cached; every call recounts from scratch.
type StatsService struct {
	repo *repository.TaskRepository
}

func NewStatsService(repo *repository.TaskRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Overview(ctx context.Context) (*dto.TaskStats, error) {
	tasks, err := s.repo.List(ctx, dto.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := dto.TaskStats{
		Total:      len(tasks),
		ByCategory: map[string]int{},
	}

	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if task.DueBefore(now) {
				stats.Overdue++
			}
		}

		switch task.Priority {
		case constants.PriorityHigh:
			stats.ByPriority.High++
		case constants.PriorityMedium:
			stats.ByPriority.Medium++
		case constants.PriorityLow:
			stats.ByPriority.Low++
		}

		switch task.Status {
		case constants.StatusTodo:
			stats.ByStatus.Todo++
		case constants.StatusInProgress:
			stats.ByStatus.InProgress++
		case constants.StatusReview:
			stats.ByStatus.Review++
		case constants.StatusBlocked:
			stats.ByStatus.Blocked++
		case constants.StatusCompleted:
			stats.ByStatus.Completed++
		}

		category := task.Category
		if category == "" {
			category = "Uncategorized"
		}
		stats.ByCategory[category]++
	}

	return &stats, nil
}
