package dto

// ── 标签字典 DTO ──

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Category string `json:"category" binding:"required,oneof=subject grade role skill"`
	Enabled  *bool  `json:"enabled"`
}

// UpdateTagRequest 修改标签请求
type UpdateTagRequest struct {
	Name    *string `json:"name"    binding:"omitempty,min=1,max=100"`
	Enabled *bool   `json:"enabled"`
}

// TagResponse 标签响应
type TagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
}
