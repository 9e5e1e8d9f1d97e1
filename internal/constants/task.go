package constants

type TaskStatus string

type TaskPriority string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusBlocked    TaskStatus = "blocked"
	StatusCompleted  TaskStatus = "completed"
)

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Statuses lists every valid task status in display order.
var Statuses = []TaskStatus{
	StatusTodo,
	StatusInProgress,
	StatusReview,
	StatusBlocked,
	StatusCompleted,
}

// Priorities lists every valid task priority in display order.
var Priorities = []TaskPriority{
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusBlocked, StatusCompleted:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
