package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/taskboard/domain/task"
	nanoid "github.com/jaevor/go-nanoid"
	"golang.org/x/sync/errgroup"
)

const idLength = 21

var (
	// ErrOwnerRequired is returned when a task is created without an owner.
	ErrOwnerRequired = errors.New("task owner is required")
	// ErrInvalidTask is returned when task fields fail validation.
	ErrInvalidTask = errors.New("invalid task")
)

// Service implements the task listing and mutation use cases.
type Service struct {
	repo  *Repository
	newID func() string
}

// NewService creates a task service with nanoid task identifiers.
func NewService(repo *Repository) (*Service, error) {
	newID, err := nanoid.Standard(idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &Service{
		repo:  repo,
		newID: newID,
	}, nil
}

// Query returns one page of the owner's tasks with the listing total, the
// whole-owner stats and the owner's categories. The reads run concurrently
// and are not taken from a single snapshot.
func (s *Service) Query(ctx context.Context, owner string, filter domain.Filter) (*domain.Page, error) {
	f := filter.Normalize()

	var page domain.Page
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := s.repo.Find(gctx, owner, f)
		page.Tasks = tasks
		return err
	})
	g.Go(func() error {
		total, err := s.repo.Count(gctx, owner, f)
		page.Total = total
		return err
	})
	g.Go(func() error {
		categories, err := s.repo.Categories(gctx, owner)
		page.Categories = categories
		return err
	})
	g.Go(func() error {
		total, err := s.repo.CountByStatus(gctx, owner, "")
		page.Stats.Total = total
		return err
	})
	g.Go(func() error {
		completed, err := s.repo.CountByStatus(gctx, owner, domain.StatusCompleted)
		page.Stats.Completed = completed
		return err
	})
	g.Go(func() error {
		pending, err := s.repo.CountByStatus(gctx, owner, domain.StatusPending)
		page.Stats.Pending = pending
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if page.Tasks == nil {
		page.Tasks = []domain.Task{}
	}
	if page.Categories == nil {
		page.Categories = []string{}
	}
	return &page, nil
}

// Create stores a new task for req.OwnerID. Status defaults to PENDING.
func (s *Service) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if req.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	if req.Status == "" {
		req.Status = domain.StatusPending
	}

	switch {
	case req.Title == "":
		return nil, fmt.Errorf("%w: title is required", ErrInvalidTask)
	case req.Category == "":
		return nil, fmt.Errorf("%w: category is required", ErrInvalidTask)
	case !req.Priority.Valid():
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, req.Priority)
	case !req.Status.Valid():
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTask, req.Status)
	}

	task := &domain.Task{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
		UserID:      req.OwnerID,
	}
	if task.DueDate != nil {
		due := task.DueDate.UTC()
		task.DueDate = &due
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update. Only fields present in patch are written.
func (s *Service) Update(ctx context.Context, id, owner string, patch domain.Patch) (*domain.Task, error) {
	if errs := patch.Validate(); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTask, errs)
	}
	if patch.DueDate.Set && !patch.DueDate.Null {
		patch.DueDate.Value = patch.DueDate.Value.UTC()
	}
	return s.repo.Update(ctx, id, owner, patch.Columns())
}

// Delete removes one task.
func (s *Service) Delete(ctx context.Context, id, owner string) error {
	return s.repo.Delete(ctx, id, owner)
}

// DeleteMany removes the given tasks. The returned count is the number of ids
// submitted, not the number of rows removed.
func (s *Service) DeleteMany(ctx context.Context, ids []string, owner string) (int, error) {
	if _, err := s.repo.DeleteMany(ctx, ids, owner); err != nil {
		return 0, err
	}
	return len(ids), nil
}
