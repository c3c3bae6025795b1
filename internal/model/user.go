package model

import "time"

// 用户层角色（区别于 AdminRoleAssignment 的治理角色）
const (
	UserRoleGuest            = "guest"
	UserRoleGeneralStudent   = "general_student"
	UserRoleUniversityStu    = "university_student"
	UserRoleVolunteerTeacher = "volunteer_teacher"
	UserRoleGovernance       = "governance"
)

// 入驻审核状态
const (
	OnboardingApproved = "approved"
	OnboardingPending  = "pending"
	OnboardingRejected = "rejected"
)

// User 用户表 — 对应 users
// 管理层权限通过 admin_role_assignments 关联表实现，此处仅保存用户层身份。
type User struct {
	UserID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username         string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName         string    `gorm:"type:varchar(100);not null;default:''"          json:"full_name"`
	Role             string    `gorm:"type:varchar(32);not null;default:'general_student'" json:"role"`
	SchoolID         string    `gorm:"type:varchar(100);column:school_id"             json:"school_id,omitempty"`
	OrganizationID   *string   `gorm:"type:uuid"                                      json:"organization_id,omitempty"`
	IsActive         bool      `gorm:"not null;default:true"                          json:"is_active"`
	IsSuperuser      bool      `gorm:"not null;default:false"                         json:"is_superuser"`
	OnboardingStatus string    `gorm:"type:varchar(16);not null;default:'approved'"   json:"onboarding_status"`
	StudentVerified  bool      `gorm:"not null;default:false"                         json:"student_verified"`
	TeacherVerified  bool      `gorm:"not null;default:false"                         json:"teacher_verified"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// 关联
	AdminRoles []AdminRoleAssignment `gorm:"foreignKey:UserID;references:UserID" json:"admin_roles,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
