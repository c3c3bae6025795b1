package dto

// ── 系统事件 DTO ──

// RaiseEventRequest 上报系统事件请求
type RaiseEventRequest struct {
	Group  string `json:"group"  binding:"required,oneof=daily urgent"`
	Title  string `json:"title"  binding:"required,min=1,max=200"`
	Detail string `json:"detail" binding:"omitempty,max=5000"`
	Level  string `json:"level"  binding:"required,oneof=info warning critical"`
}

// TransitionEventRequest 事件状态流转请求
type TransitionEventRequest struct {
	Status string `json:"status" binding:"required,oneof=ack closed"`
}

// EventListRequest 事件列表查询参数
type EventListRequest struct {
	PaginationRequest
	Group  string `form:"group"  binding:"omitempty,oneof=daily urgent"`
	Status string `form:"status" binding:"omitempty,oneof=open ack closed"`
}

// ── 响应 ──

// EventResponse 系统事件响应
type EventResponse struct {
	ID        string `json:"id"`
	Group     string `json:"group"`
	Title     string `json:"title"`
	Detail    string `json:"detail,omitempty"`
	Level     string `json:"level"`
	Status    string `json:"status"`
	HandledBy string `json:"handled_by,omitempty"`
	HandledAt string `json:"handled_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

// UrgentCountResponse 紧急事件角标响应
type UrgentCountResponse struct {
	Count int64 `json:"count"`
}
