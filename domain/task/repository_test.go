package task

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepo creates a repository over an in-memory SQLite database.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return repo
}

func mustInsert(t *testing.T, repo *Repository, title string, p Priority, s Status, at time.Time) *Task {
	t.Helper()

	task := &Task{
		ID:        NewID(),
		Title:     title,
		Priority:  p,
		Status:    s,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := repo.Insert(context.Background(), task); err != nil {
		t.Fatalf("failed to insert task %q: %v", title, err)
	}
	return task
}

var baseTime = time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)

func TestRepositoryInsertAndFindByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	task := &Task{
		ID:          NewID(),
		Title:       "Ship the release",
		Description: "with notes",
		Priority:    PriorityHigh,
		Status:      StatusInProgress,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
	if err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	found, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.ID != task.ID || found.Title != task.Title || found.Description != task.Description {
		t.Errorf("FindByID() = %+v, want %+v", found, task)
	}
	if found.Priority != PriorityHigh || found.Status != StatusInProgress {
		t.Errorf("enums = %q/%q, want high/in-progress", found.Priority, found.Status)
	}
	if !found.CreatedAt.Equal(task.CreatedAt) || !found.UpdatedAt.Equal(task.UpdatedAt) {
		t.Errorf("timestamps = %v/%v, want %v", found.CreatedAt, found.UpdatedAt, baseTime)
	}
}

func TestRepositoryFindByIDNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID(context.Background(), NewID())
	if KindOf(err) != KindNotFound {
		t.Errorf("FindByID() kind = %q, want %q", KindOf(err), KindNotFound)
	}
}

func TestRepositoryFindManyFilters(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, "a", PriorityHigh, StatusCompleted, baseTime)
	mustInsert(t, repo, "b", PriorityLow, StatusCompleted, baseTime.Add(time.Minute))
	mustInsert(t, repo, "c", PriorityHigh, StatusPending, baseTime.Add(2*time.Minute))

	t.Run("status filter", func(t *testing.T) {
		tasks, err := repo.FindMany(ctx, NewQuery(Filter{Status: "completed"}, Sort{}))
		if err != nil {
			t.Fatalf("FindMany() error = %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("got %d tasks, want 2", len(tasks))
		}
		for _, task := range tasks {
			if task.Status != StatusCompleted {
				t.Errorf("task %q status = %q, want completed", task.Title, task.Status)
			}
		}
	})

	t.Run("all sentinel returns everything", func(t *testing.T) {
		tasks, err := repo.FindMany(ctx, NewQuery(Filter{Status: FilterAll, Priority: FilterAll}, Sort{}))
		if err != nil {
			t.Fatalf("FindMany() error = %v", err)
		}
		if len(tasks) != 3 {
			t.Errorf("got %d tasks, want 3", len(tasks))
		}
	})

	t.Run("conjunction of filters", func(t *testing.T) {
		tasks, err := repo.FindMany(ctx, NewQuery(Filter{Status: "completed", Priority: "high"}, Sort{}))
		if err != nil {
			t.Fatalf("FindMany() error = %v", err)
		}
		if len(tasks) != 1 || tasks[0].Title != "a" {
			t.Errorf("got %v, want just task a", tasks)
		}
	})

	t.Run("no match", func(t *testing.T) {
		tasks, err := repo.FindMany(ctx, NewQuery(Filter{Status: "in-progress"}, Sort{}))
		if err != nil {
			t.Fatalf("FindMany() error = %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("got %d tasks, want 0", len(tasks))
		}
	})
}

func TestRepositoryFindManySorting(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, "banana", PriorityLow, StatusPending, baseTime)
	mustInsert(t, repo, "apple", PriorityLow, StatusPending, baseTime.Add(time.Minute))
	mustInsert(t, repo, "cherry", PriorityLow, StatusPending, baseTime.Add(2*time.Minute))

	t.Run("default is newest first", func(t *testing.T) {
		tasks, err := repo.FindMany(ctx, NewQuery(Filter{}, Sort{}))
		if err != nil {
			t.Fatalf("FindMany() error = %v", err)
		}
		if tasks[0].Title != "cherry" || tasks[2].Title != "banana" {
			t.Errorf("order = %q,%q,%q, want cherry,apple,banana", tasks[0].Title, tasks[1].Title, tasks[2].Title)
		}
	})

	t.Run("title ascending", func(t *testing.T) {
		tasks, err := repo.FindMany(ctx, NewQuery(Filter{}, Sort{Field: "title", Direction: "asc"}))
		if err != nil {
			t.Fatalf("FindMany() error = %v", err)
		}
		if tasks[0].Title != "apple" || tasks[2].Title != "cherry" {
			t.Errorf("order = %q,%q,%q, want apple,banana,cherry", tasks[0].Title, tasks[1].Title, tasks[2].Title)
		}
	})
}

func TestRepositoryReplace(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	task := mustInsert(t, repo, "original", PriorityMedium, StatusPending, baseTime)

	t.Run("replace existing", func(t *testing.T) {
		updated := *task
		updated.Title = "replaced"
		updated.Description = "now with details"
		updated.Status = StatusCompleted
		updated.UpdatedAt = baseTime.Add(time.Hour)

		if err := repo.Replace(ctx, task.ID, &updated); err != nil {
			t.Fatalf("Replace() error = %v", err)
		}

		found, err := repo.FindByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Title != "replaced" || found.Status != StatusCompleted {
			t.Errorf("found = %+v, want replaced/completed", found)
		}
		if !found.CreatedAt.Equal(baseTime) {
			t.Errorf("createdAt = %v, want untouched %v", found.CreatedAt, baseTime)
		}
		if !found.UpdatedAt.Equal(baseTime.Add(time.Hour)) {
			t.Errorf("updatedAt = %v, want %v", found.UpdatedAt, baseTime.Add(time.Hour))
		}
	})

	t.Run("replace missing id", func(t *testing.T) {
		ghost := *task
		err := repo.Replace(ctx, NewID(), &ghost)
		if KindOf(err) != KindNotFound {
			t.Errorf("Replace() kind = %q, want %q", KindOf(err), KindNotFound)
		}
	})
}

func TestRepositoryDelete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	task := mustInsert(t, repo, "to be deleted", PriorityLow, StatusPending, baseTime)

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.FindByID(ctx, task.ID); KindOf(err) != KindNotFound {
		t.Errorf("FindByID() after delete kind = %q, want %q", KindOf(err), KindNotFound)
	}
	if err := repo.Delete(ctx, task.ID); KindOf(err) != KindNotFound {
		t.Errorf("second Delete() kind = %q, want %q", KindOf(err), KindNotFound)
	}
}

func TestRepositoryCount(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, "a", PriorityHigh, StatusCompleted, baseTime)
	mustInsert(t, repo, "b", PriorityLow, StatusPending, baseTime)

	total, err := repo.Count(ctx, Filter{})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 2 {
		t.Errorf("Count() = %d, want 2", total)
	}

	completed, err := repo.Count(ctx, Filter{Status: "completed"})
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if completed != 1 {
		t.Errorf("Count(completed) = %d, want 1", completed)
	}
}

func TestRepositoryStats(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		if stats.Total != 0 {
			t.Errorf("total = %d, want 0", stats.Total)
		}
		if len(stats.Priority) != 0 {
			t.Errorf("priority map = %v, want empty", stats.Priority)
		}
	})

	mustInsert(t, repo, "a", PriorityHigh, StatusCompleted, baseTime)
	mustInsert(t, repo, "b", PriorityHigh, StatusPending, baseTime)
	mustInsert(t, repo, "c", PriorityMedium, StatusPending, baseTime)
	mustInsert(t, repo, "d", PriorityMedium, StatusInProgress, baseTime)

	t.Run("counts and identities", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}

		if stats.Total != 4 {
			t.Errorf("total = %d, want 4", stats.Total)
		}
		if stats.Completed != 1 || stats.Pending != 2 || stats.InProgress != 1 {
			t.Errorf("status counts = %d/%d/%d, want 1/2/1", stats.Completed, stats.Pending, stats.InProgress)
		}
		if stats.Total != stats.Completed+stats.Pending+stats.InProgress {
			t.Error("status counts do not add up to total")
		}

		if stats.Priority[PriorityHigh] != 2 || stats.Priority[PriorityMedium] != 2 {
			t.Errorf("priority map = %v, want high:2 medium:2", stats.Priority)
		}
		if _, present := stats.Priority[PriorityLow]; present {
			t.Error("priority map reports a zero count instead of omitting it")
		}

		var sum int64
		for _, n := range stats.Priority {
			sum += n
		}
		if sum != stats.Total {
			t.Errorf("priority counts sum to %d, want %d", sum, stats.Total)
		}
	})
}
