package dto

// CreateTaskRequest is the POST /api/tasks payload. Title and DueDate
// are required; everything else falls back to the task defaults.
type CreateTaskRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	DueDate       string `json:"dueDate"`
	EstimatedTime string `json:"estimatedTime"`
	AssignedTo    string `json:"assignedTo"`
	Tags          string `json:"tags"`
	Status        string `json:"status"`
	Completed     bool   `json:"completed"`
}

// UpdateTaskRequest is the PUT /api/tasks/:id payload. Every field is
// optional; only fields present in the body overwrite the stored task.
type UpdateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Category      *string `json:"category"`
	Priority      *string `json:"priority"`
	DueDate       *string `json:"dueDate"`
	EstimatedTime *string `json:"estimatedTime"`
	AssignedTo    *string `json:"assignedTo"`
	Tags          *string `json:"tags"`
	Status        *string `json:"status"`
	Completed     *bool   `json:"completed"`
}

// TaskFilter holds the GET /api/tasks query parameters. Zero values mean
// "no filter"; Completed is a pointer because absence of the parameter is
// distinct from completed=false.
type TaskFilter struct {
	Search    string
	Category  string
	Priority  string
	Status    string
	Completed *bool
}
