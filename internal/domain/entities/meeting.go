package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting represents a submitted meeting transcript and its extraction results
type Meeting struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ManagerID  uuid.UUID `json:"manager_id" gorm:"type:uuid;not null;index:idx_meetings_manager_date"`
	Title      string    `json:"title" gorm:"type:varchar(255);not null"`
	Transcript string    `json:"transcript" gorm:"type:text;not null"`
	Date       time.Time `json:"date" gorm:"not null;index:idx_meetings_manager_date,sort:desc"`

	Tags    datatypes.JSONSlice[string]       `json:"tags" gorm:"type:jsonb"`
	TaskIDs datatypes.JSONSlice[uuid.UUID]    `json:"task_ids" gorm:"column:task_ids;type:jsonb"`
	Summary datatypes.JSONSlice[SummaryEntry] `json:"summary" gorm:"type:jsonb"`

	Status MeetingStatus `json:"status" gorm:"type:varchar(50);default:'active';not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SummaryEntry is a denormalized snapshot of a created task, stored on the
// meeting row for fast dashboard display.
type SummaryEntry struct {
	Description     string     `json:"description"`
	AssignedTo      uuid.UUID  `json:"assigned_to"`
	AssignedToEmail string     `json:"assigned_to_email"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Status          TaskStatus `json:"status"`
}

// MeetingStatus defines meeting lifecycle states
type MeetingStatus string

const (
	MeetingStatusActive   MeetingStatus = "active"
	MeetingStatusArchived MeetingStatus = "archived"
)

// NewMeeting creates a meeting with empty task and summary lists. Both lists
// are back-filled once after fan-out completes.
func NewMeeting(managerID uuid.UUID, title, transcript string, date time.Time, tags []string) *Meeting {
	now := time.Now()
	if tags == nil {
		tags = []string{}
	}
	return &Meeting{
		ID:         uuid.New(),
		ManagerID:  managerID,
		Title:      title,
		Transcript: transcript,
		Date:       date,
		Tags:       datatypes.NewJSONSlice(tags),
		TaskIDs:    datatypes.NewJSONSlice([]uuid.UUID{}),
		Summary:    datatypes.NewJSONSlice([]SummaryEntry{}),
		Status:     MeetingStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AttachResults sets the final task references and summary entries.
func (m *Meeting) AttachResults(taskIDs []uuid.UUID, summary []SummaryEntry) {
	m.TaskIDs = datatypes.NewJSONSlice(taskIDs)
	m.Summary = datatypes.NewJSONSlice(summary)
	m.UpdatedAt = time.Now()
}
