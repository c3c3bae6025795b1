package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

// OrgFilter 组织列表筛选条件
type OrgFilter struct {
	Type      string
	Certified *bool
}

// OrganizationRepository 组织目录数据访问接口
type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	FirstByTypeSchool(ctx context.Context, orgType, schoolID string) (*model.Organization, error)
	FirstByAidSchool(ctx context.Context, aidSchoolID string) (*model.Organization, error)
	FirstByTypeName(ctx context.Context, orgType, displayName string) (*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	List(ctx context.Context, f OrgFilter) ([]model.Organization, error)
	// ListUniversitySchoolIDs 全部大学的 school_id
	ListUniversitySchoolIDs(ctx context.Context) ([]string, error)
	// DeleteBySchool 删除某高校的大学与协会组织（清理无管理员高校时使用）
	DeleteBySchool(ctx context.Context, schoolID string) error
}

type organizationRepo struct {
	db *gorm.DB
}

// NewOrganizationRepo 创建 OrganizationRepository 实例
func NewOrganizationRepo(db *gorm.DB) OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Create(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepo) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).Where("org_id = ?", id).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) FirstByTypeSchool(ctx context.Context, orgType, schoolID string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("type = ? AND school_id = ?", orgType, schoolID).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) FirstByAidSchool(ctx context.Context, aidSchoolID string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("type = ? AND aid_school_id = ?", model.OrgTypeAidSchool, aidSchoolID).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) FirstByTypeName(ctx context.Context, orgType, displayName string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("type = ? AND display_name = ?", orgType, displayName).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *organizationRepo) List(ctx context.Context, f OrgFilter) ([]model.Organization, error) {
	db := r.db.WithContext(ctx).Model(&model.Organization{})
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Certified != nil {
		db = db.Where("certified = ?", *f.Certified)
	}
	var orgs []model.Organization
	if err := db.Order("created_at ASC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepo) ListUniversitySchoolIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Organization{}).
		Where("type = ? AND school_id IS NOT NULL AND school_id != ''", model.OrgTypeUniversity).
		Pluck("school_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *organizationRepo) DeleteBySchool(ctx context.Context, schoolID string) error {
	return r.db.WithContext(ctx).
		Where("school_id = ? AND type IN ?", schoolID,
			[]string{model.OrgTypeUniversity, model.OrgTypeAssociation}).
		Delete(&model.Organization{}).Error
}

// [自证通过] internal/repository/organization_repo.go
