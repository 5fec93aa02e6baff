package task

import "github.com/taskscribe-dev/taskscribe/internal/domain/entities"

// ListTasksResponse represents a page of tasks
type ListTasksResponse struct {
	Tasks    []*entities.Task `json:"tasks"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// CompleteTaskResponse represents the response after completing a task
type CompleteTaskResponse struct {
	Message string         `json:"message"`
	Task    *entities.Task `json:"task"`
}
