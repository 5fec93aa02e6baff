package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create persists a new task
	Create(ctx context.Context, task *entities.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)

	// FindByIDAndAssignee finds a task only if it belongs to the given assignee
	FindByIDAndAssignee(ctx context.Context, id, assigneeID uuid.UUID) (*entities.Task, error)

	// Update saves changes to an existing task
	Update(ctx context.Context, task *entities.Task) error

	// List returns all tasks with assignee and meeting preloaded, newest first
	List(ctx context.Context, limit, offset int) ([]*entities.Task, error)

	// ListByAssignee returns a user's tasks with meeting preloaded, newest first
	ListByAssignee(ctx context.Context, assigneeID uuid.UUID, limit, offset int) ([]*entities.Task, error)
}
