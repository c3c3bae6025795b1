package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

var ErrTeacherNotFound = errors.New("讲师档案不存在")

// TeacherService 讲师池业务接口
type TeacherService interface {
	List(ctx context.Context, c Caller, req *dto.TeacherListRequest) ([]dto.TeacherRecordResponse, int64, error)
	TogglePool(ctx context.Context, c Caller, userID string, inPool bool) (*dto.TeacherRecordResponse, error)
}

type teacherService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, actors: actors, logger: logger}
}

func (s *teacherService) List(ctx context.Context, c Caller, req *dto.TeacherListRequest) ([]dto.TeacherRecordResponse, int64, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.TeacherPoolFilter{
		OnlyInPool: req.OnlyInPool,
		Offset:     req.GetOffset(),
		Limit:      req.GetPageSize(),
	}
	switch {
	case actor.AuditEngaged():
		filter.SchoolID = actor.AuditSchoolID
	case actor.Superadmin() || actor.HasRole(authz.RoleAssociationHQ):
		filter.SchoolID = req.SchoolID
	case actor.HasRole(authz.RoleUniversityAssociationAdmin):
		filter.SchoolID = actor.ManagedSchoolID(authz.RoleUniversityAssociationAdmin)
	default:
		return nil, 0, authz.ErrForbidden
	}

	records, total, err := s.repo.TeacherPool.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// 姓名补全
	ids := make([]string, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].UserID)
	}
	names := make(map[string]string, len(ids))
	if users, err := s.repo.User.ListByIDs(ctx, ids); err != nil {
		// 补全失败降级为仅返回档案字段
		s.logger.Warn("讲师姓名补全失败", zap.Error(err))
	} else {
		for i := range users {
			names[users[i].UserID] = users[i].FullName
		}
	}

	result := make([]dto.TeacherRecordResponse, 0, len(records))
	for i := range records {
		resp := teacherResponse(&records[i])
		resp.FullName = names[records[i].UserID]
		result = append(result, resp)
	}
	return result, total, nil
}

func (s *teacherService) TogglePool(ctx context.Context, c Caller, userID string, inPool bool) (*dto.TeacherRecordResponse, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.TeacherPool.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if actor.Superadmin() {
				return nil, ErrTeacherNotFound
			}
			return nil, authz.ErrForbidden
		}
		return nil, err
	}

	if err := authz.Authorize(actor, authz.ActionManageTeacherPool, authz.SchoolScope(record.SchoolID)); err != nil {
		return nil, err
	}

	if err := s.repo.TeacherPool.SetInPool(ctx, userID, inPool); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("讲师池开关失败", zap.Error(err))
		return nil, err
	}

	record.InPool = inPool
	resp := teacherResponse(record)
	return &resp, nil
}

func teacherResponse(r *model.VolunteerTeacherRecord) dto.TeacherRecordResponse {
	return dto.TeacherRecordResponse{
		UserID:    r.UserID,
		SchoolID:  r.SchoolID,
		Tags:      r.Tags,
		TimeSlots: r.TimeSlots,
		InPool:    r.InPool,
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}
