package meeting

import "time"

// CreateMeetingRequest represents the request to submit a meeting transcript.
// The manager is taken from the authenticated token, not the body.
type CreateMeetingRequest struct {
	Title      string    `json:"title" validate:"required,min=1,max=255"`
	Transcript string    `json:"transcript" validate:"required,min=1"`
	Date       time.Time `json:"date" validate:"required"`
	Tags       []string  `json:"tags,omitempty" validate:"omitempty,dive,max=100"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}
