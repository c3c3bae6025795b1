package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
)

// OnboardingFilter 入驻申请筛选条件
type OnboardingFilter struct {
	Status string
	Offset int
	Limit  int
}

// OnboardingRepository 机构入驻申请数据访问接口
type OnboardingRepository interface {
	Create(ctx context.Context, req *model.OnboardingRequest) error
	GetByID(ctx context.Context, id string) (*model.OnboardingRequest, error)
	List(ctx context.Context, f OnboardingFilter) ([]model.OnboardingRequest, int64, error)
	// ApplyReview pending → approved|rejected 的单次 CAS 裁决。
	// 批准的副作用同事务：组织 get-or-create 并认证、角色分配、申请人晋升 governance。
	ApplyReview(ctx context.Context, id string, approve bool, reviewerID, reason string) (*model.OnboardingRequest, error)
}

type onboardingRepo struct {
	db *gorm.DB
}

// NewOnboardingRepo 创建 OnboardingRepository 实例
func NewOnboardingRepo(db *gorm.DB) OnboardingRepository {
	return &onboardingRepo{db: db}
}

func (r *onboardingRepo) Create(ctx context.Context, req *model.OnboardingRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *onboardingRepo) GetByID(ctx context.Context, id string) (*model.OnboardingRequest, error) {
	var req model.OnboardingRequest
	err := r.db.WithContext(ctx).Where("request_id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *onboardingRepo) List(ctx context.Context, f OnboardingFilter) ([]model.OnboardingRequest, int64, error) {
	var reqs []model.OnboardingRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.OnboardingRequest{})
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(f.Offset).Limit(f.Limit).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// DeriveSchoolCode 学校代码派生：去除全部空白后的名称，空名称回退随机码
func DeriveSchoolCode(prefix, name string) string {
	normalized := strings.Join(strings.Fields(name), "")
	if normalized != "" {
		return normalized
	}
	return prefix + "_" + uuid.NewString()[:8]
}

// roleCodeForOrgType 组织类型到作用域角色的映射
func roleCodeForOrgType(orgType string) (string, bool) {
	switch orgType {
	case model.OrgTypeUniversity:
		return "university_admin", true
	case model.OrgTypeAssociation:
		return "university_association_admin", true
	case model.OrgTypeAidSchool:
		return "aid_school_admin", true
	}
	return "", false
}

func (r *onboardingRepo) ApplyReview(ctx context.Context, id string, approve bool, reviewerID, reason string) (*model.OnboardingRequest, error) {
	var reviewed model.OnboardingRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newStatus := model.ReviewStatusRejected
		if approve {
			newStatus = model.ReviewStatusApproved
		}
		now := time.Now()
		updates := map[string]interface{}{
			"status":      newStatus,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
		}
		if !approve {
			updates["rejected_reason"] = reason
		}

		res := tx.Model(&model.OnboardingRequest{}).
			Where("request_id = ? AND status = ?", id, model.ReviewStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.OnboardingRequest{}).
				Where("request_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return pkgerrors.ErrAlreadyReviewed
		}

		if err := tx.Where("request_id = ?", id).First(&reviewed).Error; err != nil {
			return err
		}

		if !approve {
			return tx.Model(&model.User{}).
				Where("user_id = ?", reviewed.UserID).
				Update("onboarding_status", model.OnboardingRejected).Error
		}

		displayName := reviewed.SchoolName
		if reviewed.AssociationName != nil && strings.TrimSpace(*reviewed.AssociationName) != "" {
			displayName = strings.TrimSpace(*reviewed.AssociationName)
		}
		if strings.TrimSpace(displayName) == "" {
			displayName = "未命名组织"
		}

		roleCode, ok := roleCodeForOrgType(reviewed.OrgType)
		if !ok {
			return errors.New("未知的组织类型: " + reviewed.OrgType)
		}

		// 组织 get-or-create：高校类按 (type, school_id)，受援学校按 aid_school_id
		var org model.Organization
		var findErr error
		var schoolID, aidSchoolID string
		switch reviewed.OrgType {
		case model.OrgTypeUniversity, model.OrgTypeAssociation:
			schoolID = DeriveSchoolCode("uni", reviewed.SchoolName)
			findErr = tx.Where("type = ? AND school_id = ?", reviewed.OrgType, schoolID).First(&org).Error
		case model.OrgTypeAidSchool:
			aidSchoolID = DeriveSchoolCode("aid", reviewed.SchoolName)
			findErr = tx.Where("type = ? AND aid_school_id = ?", reviewed.OrgType, aidSchoolID).First(&org).Error
		}
		switch {
		case findErr == nil:
			if !org.Certified {
				if err := tx.Model(&org).Update("certified", true).Error; err != nil {
					return err
				}
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			org = model.Organization{
				OrgID:       uuid.NewString(),
				Type:        reviewed.OrgType,
				DisplayName: displayName,
				SchoolID:    schoolID,
				Certified:   true,
			}
			if aidSchoolID != "" {
				org.AidSchoolID = &aidSchoolID
			}
			if err := tx.Create(&org).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		// 幂等角色分配
		var existing int64
		if err := tx.Model(&model.AdminRoleAssignment{}).
			Where("user_id = ? AND organization_id = ?", reviewed.UserID, org.OrgID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 {
			assignment := model.AdminRoleAssignment{
				AssignmentID:   uuid.NewString(),
				UserID:         reviewed.UserID,
				RoleCode:       roleCode,
				OrganizationID: &org.OrgID,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}

		userUpdates := map[string]interface{}{
			"role":              model.UserRoleGovernance,
			"onboarding_status": model.OnboardingApproved,
			"organization_id":   org.OrgID,
		}
		if schoolID != "" {
			userUpdates["school_id"] = schoolID
		}
		return tx.Model(&model.User{}).
			Where("user_id = ?", reviewed.UserID).
			Updates(userUpdates).Error
	})
	if err != nil {
		return nil, err
	}
	return &reviewed, nil
}
