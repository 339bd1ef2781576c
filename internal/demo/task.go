package demo

import (
	"github.com/Harshal6927/advanced-alchemy/base"
)

// Task is a to-do item persisted by the demo API
type Task struct {
	base.UUIDAuditBase
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `json:"description"`
	Done        bool   `gorm:"not null" json:"done"`
}

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// UpdateTaskRequest is the payload for partially updating a task. Nil fields
// keep their stored values
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

func init() {
	base.Register(&Task{})
}
