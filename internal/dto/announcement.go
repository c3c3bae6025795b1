package dto

// ── 公告模块 DTO ──

// CreateAnnouncementRequest 发布公告请求
type CreateAnnouncementRequest struct {
	Title          string `json:"title"           binding:"required,min=1,max=200"`
	Content        string `json:"content"         binding:"required"`
	Scope          string `json:"scope"           binding:"required,oneof=public campus aid"`
	Audience       string `json:"audience"        binding:"required,oneof=public_all campus_all association_teachers_only aid_school_only"`
	SchoolID       string `json:"school_id"`       // campus 范围必填
	OrganizationID string `json:"organization_id"` // aid 范围必填
	Pinned         bool   `json:"pinned"`
}

// UpdateAnnouncementRequest 修改公告请求
type UpdateAnnouncementRequest struct {
	Title   *string `json:"title"   binding:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
	Pinned  *bool   `json:"pinned"`
}

// AnnouncementListRequest 公告列表查询参数
type AnnouncementListRequest struct {
	PaginationRequest
	Scope    string `form:"scope"     binding:"omitempty,oneof=public campus aid"`
	SchoolID string `form:"school_id"`
}

// AnnouncementResponse 公告响应
type AnnouncementResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Scope          string `json:"scope"`
	Audience       string `json:"audience"`
	SchoolID       string `json:"school_id,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	Pinned         bool   `json:"pinned"`
	CreatedBy      string `json:"created_by"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
