package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create persists a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID finds a meeting by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// Update saves changes to an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// ListByManager returns a manager's meetings, newest first
	ListByManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*entities.Meeting, error)

	// ListByAssignee returns meetings that produced a task assigned to the user,
	// newest first
	ListByAssignee(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Meeting, error)
}
