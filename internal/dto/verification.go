package dto

// ── 认证申请 DTO ──

// EvidenceRefInput 证明材料引用
type EvidenceRefInput struct {
	ID   string `json:"id"   binding:"required"`
	Name string `json:"name"`
}

// SubmitVerificationRequest 提交认证申请请求
type SubmitVerificationRequest struct {
	Type           string             `json:"type"             binding:"required,oneof=general_basic volunteer_teacher"`
	TargetSchoolID string             `json:"target_school_id"` // volunteer_teacher 必填
	EvidenceRefs   []EvidenceRefInput `json:"evidence_refs"`
	Note           string             `json:"note"             binding:"omitempty,max=2000"`
	Tags           []string           `json:"tags"`       // 讲师认证：建档用学科标签
	TimeSlots      []string           `json:"time_slots"` // 讲师认证：建档用可上课时段
}

// VerificationListRequest 认证申请列表查询参数
type VerificationListRequest struct {
	PaginationRequest
	Type     string `form:"type"      binding:"omitempty,oneof=general_basic volunteer_teacher"`
	Status   string `form:"status"    binding:"omitempty,oneof=pending approved rejected"`
	SchoolID string `form:"school_id"`
}

// ReviewVerificationRequest 审核认证申请请求
type ReviewVerificationRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason" binding:"omitempty,max=500"` // 驳回理由，留空则落默认理由
}

// TogglePoolRequest 讲师池开关请求
type TogglePoolRequest struct {
	InPool bool `json:"in_pool"`
}

// TeacherListRequest 讲师池列表查询参数
type TeacherListRequest struct {
	PaginationRequest
	SchoolID   string `form:"school_id"`
	OnlyInPool bool   `form:"only_in_pool"`
}

// ── 响应 ──

// VerificationResponse 认证申请响应
type VerificationResponse struct {
	ID             string             `json:"id"`
	Type           string             `json:"type"`
	ApplicantID    string             `json:"applicant_id"`
	ApplicantName  string             `json:"applicant_name"`
	TargetSchoolID string             `json:"target_school_id,omitempty"`
	EvidenceRefs   []EvidenceRefInput `json:"evidence_refs"`
	Note           string             `json:"note,omitempty"`
	Status         string             `json:"status"`
	ReviewedBy     string             `json:"reviewed_by,omitempty"`
	ReviewedAt     string             `json:"reviewed_at,omitempty"`
	RejectedReason string             `json:"rejected_reason,omitempty"`
	CreatedAt      string             `json:"created_at"`
}

// TeacherRecordResponse 讲师池记录响应
type TeacherRecordResponse struct {
	UserID    string   `json:"user_id"`
	FullName  string   `json:"full_name,omitempty"`
	SchoolID  string   `json:"school_id"`
	Tags      []string `json:"tags"`
	TimeSlots []string `json:"time_slots"`
	InPool    bool     `json:"in_pool"`
	UpdatedAt string   `json:"updated_at"`
}
