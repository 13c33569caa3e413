package task

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task. Priority and
// status are optional and default to "medium" and "pending".
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
}

// GetTaskRequest is the request for getting a task by id.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// ListTasksRequest is the request for listing tasks. Status and priority
// accept a literal value or "all" (no constraint); sortBy defaults to
// "createdAt" and order defaults to "desc".
type ListTasksRequest struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	SortBy   string `json:"sortBy,omitempty"`
	Order    string `json:"order,omitempty"`
}

// ListTasksResponse is the ordered, filtered task listing plus its count.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for replacing a task's fields. There
// are no partial updates: every call supplies the full payload and title
// is always required.
type UpdateTaskRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task by id.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse carries the removed record.
type DeleteTaskResponse struct {
	Deleted bool         `json:"deleted"`
	Task    TaskResponse `json:"task"`
}

// StatsRequest is the request for the aggregate counts.
type StatsRequest struct{}

// StatsResponse is the aggregate view of the task set. The priority
// mapping only contains values actually present in the set.
type StatsResponse struct {
	Total      int64            `json:"total"`
	Completed  int64            `json:"completed"`
	Pending    int64            `json:"pending"`
	InProgress int64            `json:"inProgress"`
	Priority   map[string]int64 `json:"priority"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPort is the typed contract consumers use to reach the task services.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	GetTask(ctx context.Context, id string) (*TaskResponse, error)
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id string) (*DeleteTaskResponse, error)
	TaskStats(ctx context.Context) (*StatsResponse, error)
}
