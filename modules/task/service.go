package task

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/cache"
	"golang.org/x/sync/singleflight"
)

const statsKey = "stats"

// Service is the task store facade. It runs the validation pipeline on
// writes, owns identifier and timestamp handling, and delegates persistence
// to the repository. Reads go through the cache when one is configured;
// every successful mutation invalidates it.
type Service struct {
	repo  *domain.Repository
	cache *cache.Cache // nil when caching is disabled
	group singleflight.Group
	now   func() time.Time
}

// NewService creates a Service. c may be nil to run without caching;
// correctness never depends on the cache.
func NewService(repo *domain.Repository, c *cache.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: c,
		now:   time.Now,
	}
}

// Create validates the payload, applies defaults and creation timestamps,
// and persists a new task, returning the stored record.
func (s *Service) Create(ctx context.Context, p domain.Payload) (*domain.Task, error) {
	draft, err := domain.NewDraft(p)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	t := &domain.Task{
		ID:          domain.NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Status:      draft.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return t, nil
}

// Get returns the task with the given id.
func (s *Service) Get(ctx context.Context, rawID string) (*domain.Task, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.repo.FindByID(ctx, id)
	}

	key := taskKey(id)
	var cached domain.Task
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[task] cache get %s: %v", id, err)
	}
	if found {
		return &cached, nil
	}

	// Collapse concurrent misses for the same id into one store read.
	val, err, _ := s.group.Do(key, func() (any, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	t := val.(*domain.Task)

	if err := s.cache.Set(ctx, key, t); err != nil {
		log.Printf("[task] cache set %s: %v", id, err)
	}
	return t, nil
}

// List returns the tasks matching the filter, ordered by the sort, as a
// fully materialized slice.
func (s *Service) List(ctx context.Context, f domain.Filter, sort domain.Sort) ([]domain.Task, error) {
	q := domain.NewQuery(f, sort)

	if s.cache == nil {
		return s.repo.FindMany(ctx, q)
	}

	key := listKey(q)
	var cached []domain.Task
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[task] cache get list: %v", err)
	}
	if found {
		return cached, nil
	}

	tasks, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, tasks); err != nil {
		log.Printf("[task] cache set list: %v", err)
	}
	return tasks, nil
}

// Update replaces the title, description, priority and status of an
// existing task. The payload carries full replacement semantics: it is
// validated exactly like a create, so the title is always required and
// omitted optional fields fall back to their defaults. The id and creation
// timestamp are preserved; the update timestamp advances.
func (s *Service) Update(ctx context.Context, rawID string, p domain.Payload) (*domain.Task, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	draft, err := domain.NewDraft(p)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Title = draft.Title
	updated.Description = draft.Description
	updated.Priority = draft.Priority
	updated.Status = draft.Status
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.Replace(ctx, id, &updated); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &updated, nil
}

// Remove deletes a task and returns the removed record.
func (s *Service) Remove(ctx context.Context, rawID string) (*domain.Task, error) {
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return t, nil
}

// Stats returns the aggregate counts over the current task set.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	if s.cache == nil {
		return s.repo.Stats(ctx)
	}

	var cached domain.Stats
	found, err := s.cache.Get(ctx, statsKey, &cached)
	if err != nil {
		log.Printf("[task] cache get stats: %v", err)
	}
	if found {
		return &cached, nil
	}

	val, err, _ := s.group.Do(statsKey, func() (any, error) {
		return s.repo.Stats(ctx)
	})
	if err != nil {
		return nil, err
	}
	stats := val.(*domain.Stats)

	if err := s.cache.Set(ctx, statsKey, stats); err != nil {
		log.Printf("[task] cache set stats: %v", err)
	}
	return stats, nil
}

// invalidate drops every cached view after a successful mutation. Cache
// trouble is logged, never surfaced: the store stays authoritative.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Printf("[task] cache invalidate: %v", err)
	}
}

func taskKey(id string) string {
	return "task:" + id
}

func listKey(q domain.Query) string {
	return fmt.Sprintf("list:%s:%s:%s:%s", q.Filter.Status, q.Filter.Priority, q.Sort.Field, q.Sort.Direction)
}
