package dto

import "github.com/yuanqiamanman-1/6667-sub001/internal/authz"

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Role             string `json:"role"`
	SchoolID         string `json:"school_id,omitempty"`
	IsActive         bool   `json:"is_active"`
	OnboardingStatus string `json:"onboarding_status"`
	StudentVerified  bool   `json:"student_verified"`
	TeacherVerified  bool   `json:"teacher_verified"`
	CreatedAt        string `json:"created_at"`
}

// MeResponse GET /auth/me 响应：用户 + 角色分配 + 即时派生的能力集
type MeResponse struct {
	User         UserResponse        `json:"user"`
	AdminRoles   []AdminRoleBrief    `json:"admin_roles"`
	Capabilities authz.Capabilities  `json:"capabilities"`
}

// AdminRoleBrief 角色分配简要信息
type AdminRoleBrief struct {
	ID           string             `json:"id"`
	RoleCode     string             `json:"role_code"`
	Organization *OrganizationBrief `json:"organization,omitempty"`
}

// OrganizationBrief 组织简要信息
type OrganizationBrief struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	SchoolID    string `json:"school_id,omitempty"`
	AidSchoolID string `json:"aid_school_id,omitempty"`
}

// ── 分页 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go
