package entities

import (
	"time"

	"github.com/google/uuid"
)

// Task represents an action item extracted from a meeting and assigned to a user
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Status      TaskStatus `json:"status" gorm:"type:varchar(50);default:'pending';not null"`
	AssignedTo  uuid.UUID  `json:"assigned_to" gorm:"type:uuid;not null;index"`
	MeetingID   uuid.UUID  `json:"meeting_id" gorm:"type:uuid;index"`
	Deadline    *time.Time `json:"deadline,omitempty"`

	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
	Meeting  *Meeting `json:"meeting,omitempty" gorm:"foreignKey:MeetingID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TaskStatus defines task states
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// NewTask creates a pending task for a resolved assignee.
func NewTask(meetingID, assignedTo uuid.UUID, description string, deadline *time.Time) *Task {
	now := time.Now()
	return &Task{
		ID:          uuid.New(),
		Title:       description,
		Description: description,
		Status:      TaskStatusPending,
		AssignedTo:  assignedTo,
		MeetingID:   meetingID,
		Deadline:    deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Complete marks the task as completed.
func (t *Task) Complete() {
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now()
}
