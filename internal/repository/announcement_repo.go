package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

// AnnouncementFilter 公告筛选条件
type AnnouncementFilter struct {
	Scope    string
	SchoolID string
	Offset   int
	Limit    int
}

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f AnnouncementFilter) ([]model.Announcement, int64, error)
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo 创建 AnnouncementRepository 实例
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.db.WithContext(ctx).Where("announcement_id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepo) Update(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("announcement_id = ?", id).Delete(&model.Announcement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *announcementRepo) List(ctx context.Context, f AnnouncementFilter) ([]model.Announcement, int64, error) {
	var list []model.Announcement
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Announcement{})
	if f.Scope != "" {
		db = db.Where("scope = ?", f.Scope)
	}
	if f.SchoolID != "" {
		db = db.Where("school_id = ?", f.SchoolID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	// 置顶优先，再按时间倒序
	if err := db.Offset(f.Offset).Limit(f.Limit).
		Order("pinned DESC, created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
