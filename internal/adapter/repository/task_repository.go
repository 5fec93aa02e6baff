package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
)

// TaskRepository implements the task repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create persists a new task
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID finds a task by ID
func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}
	return &task, nil
}

// FindByIDAndAssignee finds a task only if it belongs to the given assignee
func (r *TaskRepository) FindByIDAndAssignee(ctx context.Context, id, assigneeID uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND assigned_to = ?", id, assigneeID).
		First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID and assignee: %w", err)
	}
	return &task, nil
}

// Update saves changes to an existing task
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// List returns all tasks with assignee and meeting preloaded, newest first
func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]*entities.Task, error) {
	var tasks []*entities.Task
	if err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Meeting").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByAssignee returns a user's tasks with meeting preloaded, newest first
func (r *TaskRepository) ListByAssignee(ctx context.Context, assigneeID uuid.UUID, limit, offset int) ([]*entities.Task, error) {
	var tasks []*entities.Task
	if err := r.db.WithContext(ctx).
		Preload("Meeting").
		Where("assigned_to = ?", assigneeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks by assignee: %w", err)
	}
	return tasks, nil
}
