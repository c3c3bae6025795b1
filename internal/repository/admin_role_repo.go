package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

// AdminRoleRepository 管理角色分配数据访问接口
type AdminRoleRepository interface {
	Create(ctx context.Context, assignment *model.AdminRoleAssignment) error
	GetByID(ctx context.Context, id string) (*model.AdminRoleAssignment, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]model.AdminRoleAssignment, error)
	ListAll(ctx context.Context) ([]model.AdminRoleAssignment, error)
	ExistsForUserOrg(ctx context.Context, userID, orgID string) (bool, error)
	// CountByRoleAndSchool 统计持有指定角色且绑定组织属于该高校的分配数
	CountByRoleAndSchool(ctx context.Context, roleCode, schoolID string) (int64, error)
	// SchoolsWithRole 返回至少有一个指定角色持有者的高校 school_id（去重）
	SchoolsWithRole(ctx context.Context, roleCode string) (map[string]int, error)
}

type adminRoleRepo struct {
	db *gorm.DB
}

// NewAdminRoleRepo 创建 AdminRoleRepository 实例
func NewAdminRoleRepo(db *gorm.DB) AdminRoleRepository {
	return &adminRoleRepo{db: db}
}

func (r *adminRoleRepo) Create(ctx context.Context, assignment *model.AdminRoleAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *adminRoleRepo) GetByID(ctx context.Context, id string) (*model.AdminRoleAssignment, error) {
	var assignment model.AdminRoleAssignment
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *adminRoleRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("assignment_id = ?", id).Delete(&model.AdminRoleAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *adminRoleRepo) ListByUser(ctx context.Context, userID string) ([]model.AdminRoleAssignment, error) {
	var assignments []model.AdminRoleAssignment
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("user_id = ?", userID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *adminRoleRepo) ListAll(ctx context.Context) ([]model.AdminRoleAssignment, error) {
	var assignments []model.AdminRoleAssignment
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Order("created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *adminRoleRepo) ExistsForUserOrg(ctx context.Context, userID, orgID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminRoleAssignment{}).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *adminRoleRepo) CountByRoleAndSchool(ctx context.Context, roleCode, schoolID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminRoleAssignment{}).
		Joins("JOIN organizations ON organizations.org_id = admin_role_assignments.organization_id").
		Where("admin_role_assignments.role_code = ? AND organizations.school_id = ?", roleCode, schoolID).
		Count(&count).Error
	return count, err
}

func (r *adminRoleRepo) SchoolsWithRole(ctx context.Context, roleCode string) (map[string]int, error) {
	type row struct {
		SchoolID string
		Count    int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.AdminRoleAssignment{}).
		Select("organizations.school_id AS school_id, COUNT(*) AS count").
		Joins("JOIN organizations ON organizations.org_id = admin_role_assignments.organization_id").
		Where("admin_role_assignments.role_code = ? AND organizations.school_id IS NOT NULL AND organizations.school_id != ''", roleCode).
		Group("organizations.school_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int, len(rows))
	for _, r := range rows {
		result[r.SchoolID] = r.Count
	}
	return result, nil
}
