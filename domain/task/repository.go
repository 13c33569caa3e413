package task

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// sortColumns maps the client-facing sort field names to storage columns.
var sortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"description": "description",
	"priority":    "priority",
	"status":      "status",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// Repository is the handle to the persistent task store. It is injected
// into the service at construction; connection lifecycle belongs to the
// owning module. Unexpected driver failures surface as store-unavailable
// errors so callers see a bounded failure set.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a task repository on top of an open database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tasks table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Task{}); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// Insert persists a new task.
func (r *Repository) Insert(ctx context.Context, t *Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// FindByID retrieves a task by its identifier.
func (r *Repository) FindByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, storeUnavailable(err)
	}
	return &t, nil
}

// FindMany returns the tasks matching the query, fully materialized, in
// the requested order.
func (r *Repository) FindMany(ctx context.Context, q Query) ([]Task, error) {
	tx := applyFilter(r.db.WithContext(ctx).Model(&Task{}), q.Filter)

	var tasks []Task
	if err := tx.Order(orderClause(q.Sort)).Find(&tasks).Error; err != nil {
		return nil, storeUnavailable(err)
	}
	return tasks, nil
}

// Replace overwrites the mutable fields of the task with the given id.
// The id and creation timestamp are never part of the replacement.
func (r *Repository) Replace(ctx context.Context, id string, t *Task) error {
	res := r.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).Updates(map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"status":      t.Status,
		"updated_at":  t.UpdatedAt,
	})
	if res.Error != nil {
		return storeUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

// Delete permanently removes the task with the given id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		return storeUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

// Count returns the number of tasks matching the filter.
func (r *Repository) Count(ctx context.Context, f Filter) (int64, error) {
	var count int64
	tx := applyFilter(r.db.WithContext(ctx).Model(&Task{}), f)
	if err := tx.Count(&count).Error; err != nil {
		return 0, storeUnavailable(err)
	}
	return count, nil
}

// Stats computes the aggregate counts inside a single read transaction so
// the result reflects one consistent snapshot of the store. Status counts
// are independent count queries; the priority mapping is a GROUP BY that
// only reports values present in the set.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Task{}).Count(&stats.Total).Error; err != nil {
			return err
		}

		for _, c := range []struct {
			status Status
			dest   *int64
		}{
			{StatusCompleted, &stats.Completed},
			{StatusPending, &stats.Pending},
			{StatusInProgress, &stats.InProgress},
		} {
			if err := tx.Model(&Task{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
				return err
			}
		}

		var rows []struct {
			Priority Priority
			Count    int64
		}
		if err := tx.Model(&Task{}).Select("priority, count(*) as count").Group("priority").Find(&rows).Error; err != nil {
			return err
		}
		stats.Priority = make(map[Priority]int64, len(rows))
		for _, row := range rows {
			stats.Priority[row.Priority] = row.Count
		}
		return nil
	})
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return &stats, nil
}

func applyFilter(tx *gorm.DB, f Filter) *gorm.DB {
	if f.ByStatus() {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.ByPriority() {
		tx = tx.Where("priority = ?", f.Priority)
	}
	return tx
}

// orderClause translates the requested sort into an ORDER BY expression.
// Known field names map to their columns; unknown names pass through
// quoted, leaving it to the store to resolve or reject them.
func orderClause(s Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = quoteIdent(s.Field)
	}
	if s.Direction == SortAsc {
		return col + " ASC"
	}
	return col + " DESC"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
