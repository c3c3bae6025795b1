package dto

// ── 管理后台 DTO ──

// AdminUserListRequest 用户列表查询参数
type AdminUserListRequest struct {
	PaginationRequest
	Keyword         string `form:"keyword"          binding:"omitempty,max=50"`
	Role            string `form:"role"`
	IncludeInactive bool   `form:"include_inactive"`
}

// CreateOrgAdminRequest 创建组织管理员请求
// 用户与组织均按需 get-or-create：已有用户按 username 复用，组织按 (type, 学校名派生码) 复用。
type CreateOrgAdminRequest struct {
	Username    string `json:"username"     binding:"required,min=2,max=100"`
	Email       string `json:"email"        binding:"required,email"`
	Password    string `json:"password"     binding:"omitempty,min=8,max=64"` // 新建用户时必填
	FullName    string `json:"full_name"    binding:"omitempty,max=100"`
	RoleCode    string `json:"role_code"    binding:"required"`
	SchoolName  string `json:"school_name"`  // 作用域角色：高校/受援学校名称
	AidSchoolID string `json:"aid_school_id"`
}

// PurgeOrphansRequest 清理无管理员高校请求
type PurgeOrphansRequest struct {
	DryRun bool `json:"dry_run"`
}

// SubmitOnboardingRequest 机构入驻申请请求
type SubmitOnboardingRequest struct {
	OrgType         string             `json:"org_type"         binding:"required,oneof=university university_association aid_school"`
	SchoolName      string             `json:"school_name"      binding:"required,min=2,max=200"`
	AssociationName string             `json:"association_name" binding:"omitempty,max=200"`
	ContactName     string             `json:"contact_name"     binding:"required,min=1,max=100"`
	ContactEmail    string             `json:"contact_email"    binding:"required,email"`
	ContactPhone    string             `json:"contact_phone"    binding:"omitempty,max=50"`
	EvidenceRefs    []EvidenceRefInput `json:"evidence_refs"`
}

// ReviewOnboardingRequest 入驻审核请求
type ReviewOnboardingRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason" binding:"omitempty,max=500"`
}

// OnboardingListRequest 入驻申请列表查询参数
type OnboardingListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// ── 响应 ──

// OrgAdminResponse 组织管理员响应（用户 + 角色 + 组织）
type OrgAdminResponse struct {
	AssignmentID string             `json:"assignment_id"`
	UserID       string             `json:"user_id"`
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	FullName     string             `json:"full_name,omitempty"`
	RoleCode     string             `json:"role_code"`
	Organization *OrganizationBrief `json:"organization,omitempty"`
	CreatedAt    string             `json:"created_at"`
}

// PurgeOrphansResponse 清理结果响应
type PurgeOrphansResponse struct {
	DryRun    bool     `json:"dry_run"`
	SchoolIDs []string `json:"school_ids"` // 命中的无管理员高校
	Purged    int      `json:"purged"`
}

// OnboardingResponse 入驻申请响应
type OnboardingResponse struct {
	ID              string             `json:"id"`
	OrgType         string             `json:"org_type"`
	SchoolName      string             `json:"school_name"`
	AssociationName string             `json:"association_name,omitempty"`
	ContactName     string             `json:"contact_name"`
	ContactEmail    string             `json:"contact_email"`
	ContactPhone    string             `json:"contact_phone,omitempty"`
	UserID          string             `json:"user_id"`
	EvidenceRefs    []EvidenceRefInput `json:"evidence_refs"`
	Status          string             `json:"status"`
	ReviewedBy      string             `json:"reviewed_by,omitempty"`
	ReviewedAt      string             `json:"reviewed_at,omitempty"`
	RejectedReason  string             `json:"rejected_reason,omitempty"`
	CreatedAt       string             `json:"created_at"`
}
