package task

import (
	"context"
	"fmt"
	"log"

	domain "github.com/example/task-tracker/domain/task"
)

// seedPayloads is the sample data loaded when TASK_SEED=true.
var seedPayloads = []domain.Payload{
	{Title: "Set up project repository", Priority: "high", Status: "completed"},
	{Title: "Design database schema", Description: "Tables, indexes and constraints for the task store", Priority: "high", Status: "completed"},
	{Title: "Implement task services", Description: "CRUD, filtering, sorting and statistics", Priority: "medium", Status: "in-progress"},
	{Title: "Write integration tests", Priority: "medium"},
	{Title: "Update project documentation", Description: "Setup instructions and request examples", Priority: "low"},
}

// seed inserts the sample tasks through the service so seeded records go
// through the same validation and timestamp handling as client writes.
// A non-empty store is left untouched.
func (m *TaskModule) seed(ctx context.Context) error {
	count, err := m.repo.Count(ctx, domain.Filter{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("[task] Seed skipped: store already holds %d tasks", count)
		return nil
	}

	for _, p := range seedPayloads {
		if _, err := m.service.Create(ctx, p); err != nil {
			return fmt.Errorf("seed task %q: %w", p.Title, err)
		}
	}
	log.Printf("[task] Seeded %d sample tasks", len(seedPayloads))
	return nil
}
