package model

import "time"

// 认证申请类型
const (
	VerifTypeGeneralBasic     = "general_basic"
	VerifTypeVolunteerTeacher = "volunteer_teacher"
)

// 审核状态（认证申请与入驻申请共用）
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// VerificationRequest 认证申请表 — 对应 verification_requests
// pending → approved | rejected 单次流转，终态后不可再变更（仅审计读取）。
type VerificationRequest struct {
	RequestID      string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:request_id" json:"id"`
	Type           string       `gorm:"type:varchar(32);not null;index:idx_verif_requests_status" json:"type"`
	ApplicantID    string       `gorm:"type:uuid;not null;index"              json:"applicant_id"`
	ApplicantName  string       `gorm:"type:varchar(100);not null"            json:"applicant_name"`
	TargetSchoolID string       `gorm:"type:varchar(100);column:target_school_id;index" json:"target_school_id,omitempty"`
	EvidenceRefs   EvidenceRefs `gorm:"type:jsonb;not null;default:'[]'"      json:"evidence_refs"`
	Note           string       `gorm:"type:text"                             json:"note,omitempty"`
	Tags           StringList   `gorm:"type:jsonb;not null;default:'[]'"      json:"tags"`       // 讲师认证：批准建档用
	TimeSlots      StringList   `gorm:"type:jsonb;not null;default:'[]'"      json:"time_slots"` // 讲师认证：批准建档用
	Status         string       `gorm:"type:varchar(16);not null;default:'pending';index:idx_verif_requests_status" json:"status"`
	ReviewedBy     *string      `gorm:"type:uuid"                             json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time   `json:"reviewed_at,omitempty"`
	RejectedReason *string      `gorm:"type:text"                             json:"rejected_reason,omitempty"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
}

// TableName 指定表名
func (VerificationRequest) TableName() string { return "verification_requests" }

// OnboardingRequest 机构入驻申请表 — 对应 onboarding_requests
// 高校/协会/受援学校的入驻申请，由总号或超管审核，批准时创建组织并授予角色。
type OnboardingRequest struct {
	RequestID       string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:request_id" json:"id"`
	OrgType         string       `gorm:"type:varchar(32);not null"          json:"org_type"`
	SchoolName      string       `gorm:"type:varchar(200);not null"         json:"school_name"`
	AssociationName *string      `gorm:"type:varchar(200)"                  json:"association_name,omitempty"`
	ContactName     string       `gorm:"type:varchar(100);not null"         json:"contact_name"`
	ContactEmail    string       `gorm:"type:varchar(255);not null"         json:"contact_email"`
	ContactPhone    *string      `gorm:"type:varchar(50)"                   json:"contact_phone,omitempty"`
	UserID          string       `gorm:"type:uuid;not null"                 json:"user_id"`
	EvidenceRefs    EvidenceRefs `gorm:"type:jsonb;not null;default:'[]'"   json:"evidence_refs"`
	Status          string       `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	ReviewedBy      *string      `gorm:"type:uuid"                          json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewed_at,omitempty"`
	RejectedReason  *string      `gorm:"type:text"                          json:"rejected_reason,omitempty"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (OnboardingRequest) TableName() string { return "onboarding_requests" }

// [自证通过] internal/model/verification.go
