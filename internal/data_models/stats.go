package dto

// TaskStats is the aggregation snapshot served by
// GET /api/tasks/stats/overview. Breakdowns partition the same
// collection, so each one sums to Total.
type TaskStats struct {
	Total      int               `json:"total"`
	Completed  int               `json:"completed"`
	Pending    int               `json:"pending"`
	Overdue    int               `json:"overdue"`
	ByPriority PriorityBreakdown `json:"byPriority"`
	ByStatus   StatusBreakdown   `json:"byStatus"`
	ByCategory map[string]int    `json:"byCategory"`
}

type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type StatusBreakdown struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in-progress"`
	Review     int `json:"review"`
	Blocked    int `json:"blocked"`
	Completed  int `json:"completed"`
}
