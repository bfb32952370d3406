package domain

import (
	"context"
	"time"
)

// 状态/优先级为大小写敏感的枚举（"Pending" 与 "pending" 不等价）
type TaskStatus string

const (
	StatusPending   TaskStatus = "Pending"
	StatusCompleted TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Task struct {
	ID          string       `gorm:"primaryKey;size:32" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"size:1024" json:"description,omitempty"`
	Status      TaskStatus   `gorm:"size:16;not null;default:Pending" json:"status"`
	Priority    TaskPriority `gorm:"size:16;not null;default:Low" json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	OwnerID     string       `gorm:"index;size:32;not null" json:"owner"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (Task) TableName() string { return "tasks" }

// TaskDraft 创建入参；Status/Priority 为空时取默认值
type TaskDraft struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// TaskPatch 部分更新；零值字段视为「未提供」，保持原值
type TaskPatch struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	// FindByID 未命中时返回 (nil, nil)
	FindByID(ctx context.Context, id string) (*Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID string, status TaskStatus) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}
