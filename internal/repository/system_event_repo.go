package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
)

// EventFilter 系统事件筛选条件
type EventFilter struct {
	Group  string
	Status string
	Offset int
	Limit  int
}

// SystemEventRepository 系统事件数据访问接口
type SystemEventRepository interface {
	Create(ctx context.Context, event *model.SystemEvent) error
	GetByID(ctx context.Context, id string) (*model.SystemEvent, error)
	List(ctx context.Context, f EventFilter) ([]model.SystemEvent, int64, error)
	// Transition 状态只前进的 CAS 流转；非法边返回 ErrInvalidTransition，状态不变。
	Transition(ctx context.Context, id, toStatus, handlerID string) (*model.SystemEvent, error)
	CountOpenUrgent(ctx context.Context) (int64, error)
}

type systemEventRepo struct {
	db *gorm.DB
}

// NewSystemEventRepo 创建 SystemEventRepository 实例
func NewSystemEventRepo(db *gorm.DB) SystemEventRepository {
	return &systemEventRepo{db: db}
}

func (r *systemEventRepo) Create(ctx context.Context, event *model.SystemEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *systemEventRepo) GetByID(ctx context.Context, id string) (*model.SystemEvent, error) {
	var event model.SystemEvent
	err := r.db.WithContext(ctx).Where("event_id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *systemEventRepo) List(ctx context.Context, f EventFilter) ([]model.SystemEvent, int64, error) {
	var events []model.SystemEvent
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SystemEvent{})
	if f.Group != "" {
		db = db.Where(`"group" = ?`, f.Group)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(f.Offset).Limit(f.Limit).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *systemEventRepo) Transition(ctx context.Context, id, toStatus, handlerID string) (*model.SystemEvent, error) {
	// open → ack → closed，允许 open 直接 closed，禁止任何回退
	var allowedFrom []string
	switch toStatus {
	case model.EventStatusAck:
		allowedFrom = []string{model.EventStatusOpen}
	case model.EventStatusClosed:
		allowedFrom = []string{model.EventStatusOpen, model.EventStatusAck}
	default:
		return nil, pkgerrors.ErrInvalidTransition
	}

	var event model.SystemEvent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.SystemEvent{}).
			Where("event_id = ? AND status IN ?", id, allowedFrom).
			Updates(map[string]interface{}{
				"status":     toStatus,
				"handled_by": handlerID, // 归属覆盖：仅保留最近操作人
				"handled_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.SystemEvent{}).
				Where("event_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return pkgerrors.ErrInvalidTransition
		}
		return tx.Where("event_id = ?", id).First(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *systemEventRepo) CountOpenUrgent(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SystemEvent{}).
		Where(`"group" = ? AND status = ?`, model.EventGroupUrgent, model.EventStatusOpen).
		Count(&count).Error
	return count, err
}
