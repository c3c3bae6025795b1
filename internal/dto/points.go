package dto

// ── 积分模块 DTO ──

// RedeemRequest 积分兑换请求
type RedeemRequest struct {
	ItemID   string `json:"item_id"   binding:"required"`
	ItemName string `json:"item_name" binding:"required,min=1,max=200"`
	Cost     int64  `json:"cost"      binding:"required,gt=0"`
}

// CreditPointsRequest 平台侧积分调账请求：正数发放，负数扣减
type CreditPointsRequest struct {
	UserID string            `json:"user_id" binding:"required,uuid"`
	Amount int64             `json:"amount"  binding:"required,ne=0"`
	Title  string            `json:"title"   binding:"required,min=1,max=200"`
	Meta   map[string]interface{} `json:"meta"`
}

// TransactionListRequest 积分流水列表查询参数
type TransactionListRequest struct {
	PaginationRequest
	Type string `form:"type" binding:"omitempty,oneof=earn reward_in reward_out redeem admin_adjust"`
}

// ── 响应 ──

// BalanceResponse 余额响应
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// TransactionResponse 积分流水响应
type TransactionResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Delta     int64             `json:"delta"`
	Title     string            `json:"title"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt string            `json:"created_at"`
}

// RedemptionResponse 兑换记录响应
type RedemptionResponse struct {
	ID         string `json:"id"`
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	PointsCost int64  `json:"points_cost"`
	TxnID      string `json:"txn_id"`
	CreatedAt  string `json:"created_at"`
}
