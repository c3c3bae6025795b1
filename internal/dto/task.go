package dto

// ── 协会任务 DTO ──

// CreateTaskRequest 发布协会任务请求
type CreateTaskRequest struct {
	Type            string  `json:"type"             binding:"required,oneof=urgent special"`
	Title           string  `json:"title"            binding:"required,min=1,max=200"`
	Description     string  `json:"description"      binding:"omitempty,max=5000"`
	RewardHours     float64 `json:"reward_hours"     binding:"omitempty,gte=0"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,gt=0"`
}

// TaskListRequest 任务列表查询参数
type TaskListRequest struct {
	PaginationRequest
	Type string `form:"type" binding:"omitempty,oneof=urgent special"`
}

// TaskResponse 协会任务响应
type TaskResponse struct {
	ID              string  `json:"id"`
	SchoolID        string  `json:"school_id"`
	Type            string  `json:"type"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	RewardHours     float64 `json:"reward_hours"`
	MaxParticipants *int    `json:"max_participants,omitempty"`
	CreatedBy       string  `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
}
