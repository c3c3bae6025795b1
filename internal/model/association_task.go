package model

import "time"

// 协会任务类型
const (
	TaskTypeUrgent  = "urgent"
	TaskTypeSpecial = "special"
)

// AssociationTask 协会任务表 — 对应 association_tasks
// 由协会管理员发布，讲师端只读参与；当前范围内创建后即终态。
type AssociationTask struct {
	TaskID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:task_id" json:"id"`
	SchoolID        string    `gorm:"type:varchar(100);not null;index;column:school_id" json:"school_id"`
	Type            string    `gorm:"type:varchar(16);not null"          json:"type"`
	Title           string    `gorm:"type:varchar(200);not null"         json:"title"`
	Description     string    `gorm:"type:text;not null;default:''"      json:"description"`
	RewardHours     float64   `gorm:"not null;default:0"                 json:"reward_hours"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
	CreatedBy       string    `gorm:"type:uuid;not null"                 json:"created_by"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (AssociationTask) TableName() string { return "association_tasks" }

// [自证通过] internal/model/association_task.go
