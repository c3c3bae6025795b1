package dto

// ── 组织目录 DTO ──

// OrgListRequest 组织列表查询参数
type OrgListRequest struct {
	Type         string `form:"type"          binding:"omitempty,oneof=university university_association aid_school"`
	Certified    *bool  `form:"certified"`
	RequireAdmin bool   `form:"require_admin"`
}

// OrgResolveRequest 按业务键定位组织
type OrgResolveRequest struct {
	Type        string `form:"type"          binding:"required,oneof=university university_association aid_school"`
	SchoolID    string `form:"school_id"`
	AidSchoolID string `form:"aid_school_id"`
}

// CreateOrgRequest 创建组织请求（仅超管）
type CreateOrgRequest struct {
	Type        string `json:"type"          binding:"required,oneof=university university_association aid_school"`
	DisplayName string `json:"display_name"  binding:"required,min=2,max=200"`
	SchoolID    string `json:"school_id"`
	AidSchoolID string `json:"aid_school_id"`
	Certified   bool   `json:"certified"`
}

// ── 响应 ──

// OrgResponse 组织响应
type OrgResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	SchoolID    string `json:"school_id,omitempty"`
	AidSchoolID string `json:"aid_school_id,omitempty"`
	Certified   bool   `json:"certified"`
	CreatedAt   string `json:"created_at"`
}

// CampusBoardEntry 跨校看板条目：拥有校级管理员的高校
type CampusBoardEntry struct {
	SchoolID        string `json:"school_id"`
	UniversityName  string `json:"university_name,omitempty"`
	AssociationName string `json:"association_name,omitempty"`
	AdminCount      int    `json:"admin_count"`
}
