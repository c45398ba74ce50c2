package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;index:idx_tasks_user_created,priority:1" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	Completed   bool      `gorm:"not null" json:"completed"`
	Priority    Priority  `gorm:"size:10;not null" json:"priority"`
	CreatedAt   time.Time `gorm:"not null;index:idx_tasks_user_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TaskStats holds the aggregate counts for a single user's tasks.
type TaskStats struct {
	Total      int64         `json:"total"`
	Completed  int64         `json:"completed"`
	Pending    int64         `json:"pending"`
	ByPriority PriorityStats `json:"by_priority"`
}

type PriorityStats struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
}
