package model

import "time"

// 组织类型
const (
	OrgTypeUniversity  = "university"
	OrgTypeAssociation = "university_association"
	OrgTypeAidSchool   = "aid_school"
)

// Organization 组织表 — 对应 organizations
// school_id 在大学与其协会之间共享（1:1 映射同一所高校），aid_school_id 全局唯一。
type Organization struct {
	OrgID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:org_id" json:"id"`
	Type        string    `gorm:"type:varchar(32);not null;index"       json:"type"`
	DisplayName string    `gorm:"type:varchar(200);not null"            json:"display_name"`
	SchoolID    string    `gorm:"type:varchar(100);column:school_id"    json:"school_id,omitempty"`
	AidSchoolID *string   `gorm:"type:varchar(100);uniqueIndex"         json:"aid_school_id,omitempty"`
	Certified   bool      `gorm:"not null;default:false"                json:"certified"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
}

// TableName 指定表名
func (Organization) TableName() string { return "organizations" }

// [自证通过] internal/model/organization.go
