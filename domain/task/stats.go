package task

// Stats is the aggregate view of the task set: the overall count, a count
// per status, and a count per priority value actually present. Priorities
// with zero tasks are omitted from the mapping rather than reported as 0.
type Stats struct {
	Total      int64              `json:"total"`
	Completed  int64              `json:"completed"`
	Pending    int64              `json:"pending"`
	InProgress int64              `json:"inProgress"`
	Priority   map[Priority]int64 `json:"priority"`
}
