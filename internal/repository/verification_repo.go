package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
)

// VerificationFilter 认证申请列表筛选条件
type VerificationFilter struct {
	Type        string
	Status      string
	SchoolID    string
	ApplicantID string
	Offset      int
	Limit       int
}

// VerificationRepository 认证申请数据访问接口
type VerificationRepository interface {
	Create(ctx context.Context, req *model.VerificationRequest) error
	GetByID(ctx context.Context, id string) (*model.VerificationRequest, error)
	List(ctx context.Context, f VerificationFilter) ([]model.VerificationRequest, int64, error)
	// ApplyReview pending → approved|rejected 的单次 CAS 裁决。
	// 批准讲师认证时在同一事务内完成讲师池建档与用户角色晋升；
	// 已终态返回 ErrAlreadyReviewed，不存在返回 gorm.ErrRecordNotFound。
	ApplyReview(ctx context.Context, id string, approve bool, reviewerID, reason string) (*model.VerificationRequest, error)
}

type verificationRepo struct {
	db *gorm.DB
}

// NewVerificationRepo 创建 VerificationRepository 实例
func NewVerificationRepo(db *gorm.DB) VerificationRepository {
	return &verificationRepo{db: db}
}

func (r *verificationRepo) Create(ctx context.Context, req *model.VerificationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *verificationRepo) GetByID(ctx context.Context, id string) (*model.VerificationRequest, error) {
	var req model.VerificationRequest
	err := r.db.WithContext(ctx).Where("request_id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *verificationRepo) List(ctx context.Context, f VerificationFilter) ([]model.VerificationRequest, int64, error) {
	var reqs []model.VerificationRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.VerificationRequest{})
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.SchoolID != "" {
		db = db.Where("target_school_id = ?", f.SchoolID)
	}
	if f.ApplicantID != "" {
		db = db.Where("applicant_id = ?", f.ApplicantID)
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

func (r *verificationRepo) ApplyReview(ctx context.Context, id string, approve bool, reviewerID, reason string) (*model.VerificationRequest, error) {
	var reviewed model.VerificationRequest

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

		// CAS：只有 pending 状态能被裁决，竞争失败方一行都改不到
		res := tx.Model(&model.VerificationRequest{}).
			Where("request_id = ? AND status = ?", id, model.ReviewStatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.VerificationRequest{}).
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
			return nil
		}

		// 批准的副作用与裁决同事务：回滚则裁决与建档一并消失
		switch reviewed.Type {
		case model.VerifTypeVolunteerTeacher:
			record := model.VolunteerTeacherRecord{
				UserID:    reviewed.ApplicantID,
				SchoolID:  reviewed.TargetSchoolID,
				Tags:      reviewed.Tags,
				TimeSlots: reviewed.TimeSlots,
				InPool:    true,
				UpdatedAt: now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"school_id", "tags", "time_slots", "in_pool", "updated_at",
				}),
			}).Create(&record).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.User{}).
				Where("user_id = ?", reviewed.ApplicantID).
				Updates(map[string]interface{}{
					"role":             model.UserRoleVolunteerTeacher,
					"teacher_verified": true,
				}).Error; err != nil {
				return err
			}
		case model.VerifTypeGeneralBasic:
			if err := tx.Model(&model.User{}).
				Where("user_id = ?", reviewed.ApplicantID).
				Update("student_verified", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reviewed, nil
}
