package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/taskboard/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when a task does not exist or is not visible
// to the requesting owner.
var ErrTaskNotFound = errors.New("task not found")

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// owned scopes a query to the tasks of one owner.
func (r *Repository) owned(ctx context.Context, owner string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Task{}).Where("user_id = ?", owner)
}

// matching applies the listing predicate. The filter must be normalized.
// Search is a case-sensitive substring match on the title.
func (r *Repository) matching(ctx context.Context, owner string, f domain.Filter) *gorm.DB {
	q := r.owned(ctx, owner)
	if f.Search != "" {
		q = q.Where("instr(title, ?) > 0", f.Search)
	}
	if f.Status != domain.All {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != domain.All {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Category != domain.All {
		q = q.Where("category = ?", f.Category)
	}
	return q
}

// Find returns one page of the owner's tasks matching f.
func (r *Repository) Find(ctx context.Context, owner string, f domain.Filter) ([]domain.Task, error) {
	f = f.Normalize()

	var tasks []domain.Task
	err := r.matching(ctx, owner, f).
		Order(f.OrderClause()).
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Count returns the number of the owner's tasks matching f, ignoring paging.
func (r *Repository) Count(ctx context.Context, owner string, f domain.Filter) (int64, error) {
	var total int64
	if err := r.matching(ctx, owner, f.Normalize()).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return total, nil
}

// CountByStatus counts all of the owner's tasks, or only those with status
// when it is not empty.
func (r *Repository) CountByStatus(ctx context.Context, owner string, status domain.Status) (int64, error) {
	q := r.owned(ctx, owner)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// Categories returns the distinct categories used by the owner.
func (r *Repository) Categories(ctx context.Context, owner string) ([]string, error) {
	categories := make([]string, 0)
	err := r.owned(ctx, owner).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create saves a new task to the database.
func (r *Repository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID. A non-empty owner restricts the
// lookup to that owner's tasks.
func (r *Repository) FindByID(ctx context.Context, id, owner string) (*domain.Task, error) {
	var task domain.Task
	if err := r.byID(ctx, id, owner).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Update writes the given columns of one task and returns the stored row.
// A non-empty owner restricts the update to that owner's tasks.
func (r *Repository) Update(ctx context.Context, id, owner string, columns map[string]any) (*domain.Task, error) {
	if len(columns) == 0 {
		return r.FindByID(ctx, id, owner)
	}

	result := r.byID(ctx, id, owner).Updates(columns)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}
	return r.FindByID(ctx, id, owner)
}

// Delete removes a task by ID. A non-empty owner restricts the delete to
// that owner's tasks.
func (r *Repository) Delete(ctx context.Context, id, owner string) error {
	result := r.byID(ctx, id, owner).Delete(&domain.Task{})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteMany removes every task in ids and returns the number of rows removed.
// A non-empty owner restricts the delete to that owner's tasks.
func (r *Repository) DeleteMany(ctx context.Context, ids []string, owner string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	q := r.db.WithContext(ctx).Where("id IN ?", ids)
	if owner != "" {
		q = q.Where("user_id = ?", owner)
	}

	result := q.Delete(&domain.Task{})
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}
	return result.RowsAffected, nil
}

func (r *Repository) byID(ctx context.Context, id, owner string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id)
	if owner != "" {
		q = q.Where("user_id = ?", owner)
	}
	return q
}
