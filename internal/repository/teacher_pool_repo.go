package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

// TeacherPoolFilter 讲师池列表筛选条件
type TeacherPoolFilter struct {
	SchoolID   string
	OnlyInPool bool
	Offset     int
	Limit      int
}

// TeacherPoolRepository 讲师池数据访问接口
// 建档由认证审核事务完成（见 VerificationRepository.ApplyReview），此处只负责查询与开关。
type TeacherPoolRepository interface {
	Get(ctx context.Context, userID string) (*model.VolunteerTeacherRecord, error)
	List(ctx context.Context, f TeacherPoolFilter) ([]model.VolunteerTeacherRecord, int64, error)
	SetInPool(ctx context.Context, userID string, inPool bool) error
}

type teacherPoolRepo struct {
	db *gorm.DB
}

// NewTeacherPoolRepo 创建 TeacherPoolRepository 实例
func NewTeacherPoolRepo(db *gorm.DB) TeacherPoolRepository {
	return &teacherPoolRepo{db: db}
}

func (r *teacherPoolRepo) Get(ctx context.Context, userID string) (*model.VolunteerTeacherRecord, error) {
	var record model.VolunteerTeacherRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *teacherPoolRepo) List(ctx context.Context, f TeacherPoolFilter) ([]model.VolunteerTeacherRecord, int64, error) {
	var records []model.VolunteerTeacherRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.VolunteerTeacherRecord{})
	if f.SchoolID != "" {
		db = db.Where("school_id = ?", f.SchoolID)
	}
	if f.OnlyInPool {
		db = db.Where("in_pool = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(f.Offset).Limit(f.Limit).
		Order("updated_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// SetInPool 开关为 last-write-wins，无版本校验
func (r *teacherPoolRepo) SetInPool(ctx context.Context, userID string, inPool bool) error {
	res := r.db.WithContext(ctx).Model(&model.VolunteerTeacherRecord{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"in_pool":    inPool,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
