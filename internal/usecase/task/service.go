package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/taskscribe-dev/taskscribe/errors"
	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	"github.com/taskscribe-dev/taskscribe/internal/domain/repositories"
)

// Service handles task queries and completion
type Service interface {
	ListForUser(ctx context.Context, user *entities.User, limit, offset int) ([]*entities.Task, error)
	Complete(ctx context.Context, user *entities.User, taskID uuid.UUID) (*entities.Task, error)
}

type service struct {
	taskRepo repositories.TaskRepository
	logger   *zap.Logger
}

// NewService constructs a task service
func NewService(taskRepo repositories.TaskRepository, logger *zap.Logger) Service {
	return &service{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// ListForUser returns the tasks visible to the user: their own for employees,
// everything for managers.
func (s *service) ListForUser(ctx context.Context, user *entities.User, limit, offset int) ([]*entities.Task, error) {
	if user.Role == entities.RoleEmployee {
		return s.taskRepo.ListByAssignee(ctx, user.ID, limit, offset)
	}
	return s.taskRepo.List(ctx, limit, offset)
}

// Complete marks a task completed. Only the assignee may complete it; a task
// owned by someone else is indistinguishable from a missing one.
func (s *service) Complete(ctx context.Context, user *entities.User, taskID uuid.UUID) (*entities.Task, error) {
	t, err := s.taskRepo.FindByIDAndAssignee(ctx, taskID, user.ID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound(taskID.String())
		}
		return nil, apperrors.ErrInternal(err)
	}

	t.Complete()
	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, apperrors.ErrTaskUpdateFailed(taskID.String(), err)
	}

	s.logger.Info("task completed",
		zap.String("task_id", t.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	return t, nil
}
