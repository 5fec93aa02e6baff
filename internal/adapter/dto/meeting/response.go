package meeting

import "github.com/taskscribe-dev/taskscribe/internal/domain/entities"

// CreateMeetingResponse is the aggregate returned after the extraction
// pipeline finishes. The two counts expose partial loss to the caller.
type CreateMeetingResponse struct {
	Meeting             *entities.Meeting `json:"meeting"`
	TasksCreated        int               `json:"tasks_created"`
	TotalTasksAttempted int               `json:"total_tasks_attempted"`
}

// ListMeetingsResponse represents a page of meetings
type ListMeetingsResponse struct {
	Meetings []*entities.Meeting `json:"meetings"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}
