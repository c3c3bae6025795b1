package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

// TaskFilter 协会任务筛选条件
type TaskFilter struct {
	SchoolID string
	Type     string
	Offset   int
	Limit    int
}

// AssociationTaskRepository 协会任务数据访问接口
type AssociationTaskRepository interface {
	Create(ctx context.Context, task *model.AssociationTask) error
	GetByID(ctx context.Context, id string) (*model.AssociationTask, error)
	List(ctx context.Context, f TaskFilter) ([]model.AssociationTask, int64, error)
}

type associationTaskRepo struct {
	db *gorm.DB
}

// NewAssociationTaskRepo 创建 AssociationTaskRepository 实例
func NewAssociationTaskRepo(db *gorm.DB) AssociationTaskRepository {
	return &associationTaskRepo{db: db}
}

func (r *associationTaskRepo) Create(ctx context.Context, task *model.AssociationTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *associationTaskRepo) GetByID(ctx context.Context, id string) (*model.AssociationTask, error) {
	var task model.AssociationTask
	err := r.db.WithContext(ctx).Where("task_id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *associationTaskRepo) List(ctx context.Context, f TaskFilter) ([]model.AssociationTask, int64, error) {
	var tasks []model.AssociationTask
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AssociationTask{})
	if f.SchoolID != "" {
		db = db.Where("school_id = ?", f.SchoolID)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(f.Offset).Limit(f.Limit).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}
