package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

// ── 公告模块业务错误 ──

var (
	ErrAnnouncementNotFound = errors.New("公告不存在")
	ErrInvalidAudience      = errors.New("受众与公告范围不匹配")
	ErrScopeFieldMissing    = errors.New("该范围缺少必填字段")
)

// AnnouncementService 公告业务接口
type AnnouncementService interface {
	List(ctx context.Context, req *dto.AnnouncementListRequest) ([]dto.AnnouncementResponse, int64, error)
	Create(ctx context.Context, c Caller, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Update(ctx context.Context, c Caller, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, c Caller, id string) error
}

type announcementService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, actors: actors, logger: logger}
}

func (s *announcementService) List(ctx context.Context, req *dto.AnnouncementListRequest) ([]dto.AnnouncementResponse, int64, error) {
	list, total, err := s.repo.Announcement.List(ctx, repository.AnnouncementFilter{
		Scope:    req.Scope,
		SchoolID: req.SchoolID,
		Offset:   req.GetOffset(),
		Limit:    req.GetPageSize(),
	})
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		result = append(result, announcementResponse(&list[i]))
	}
	return result, total, nil
}

// Create 按范围分级门禁：
//
//	public  — 平台 / 校级治理角色，受众只能 public_all
//	campus  — 本校治理角色（总号/超管豁免校匹配）；协会管理员受众限 association_teachers_only
//	aid     — 需 organization_id，受援学校角色，受众只能 aid_school_only
func (s *announcementService) Create(ctx context.Context, c Caller, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if !actor.Active {
		return nil, authz.ErrForbidden
	}

	exempt := actor.Superadmin() || actor.HasRole(authz.RoleAssociationHQ)
	isUniAdmin := actor.HasRole(authz.RoleUniversityAdmin)
	isAssocAdmin := actor.HasRole(authz.RoleUniversityAssociationAdmin)

	switch req.Scope {
	case model.AnnScopePublic:
		if !(exempt || isUniAdmin || isAssocAdmin) {
			return nil, authz.ErrForbidden
		}
		if req.Audience != model.AnnAudiencePublicAll {
			return nil, ErrInvalidAudience
		}
	case model.AnnScopeCampus:
		if req.SchoolID == "" {
			return nil, ErrScopeFieldMissing
		}
		if !(exempt || isUniAdmin || isAssocAdmin) {
			return nil, authz.ErrForbidden
		}
		if !exempt &&
			!actor.HasRoleForSchool(authz.RoleUniversityAdmin, req.SchoolID) &&
			!actor.HasRoleForSchool(authz.RoleUniversityAssociationAdmin, req.SchoolID) {
			return nil, authz.ErrForbidden
		}
		if isAssocAdmin && !exempt && !isUniAdmin && req.Audience != model.AnnAudienceAssociationTeach {
			return nil, ErrInvalidAudience
		}
		if req.Audience != model.AnnAudienceCampusAll && req.Audience != model.AnnAudienceAssociationTeach {
			return nil, ErrInvalidAudience
		}
	case model.AnnScopeAid:
		if req.OrganizationID == "" {
			return nil, ErrScopeFieldMissing
		}
		if !(exempt || actor.HasRole(authz.RoleAidSchoolAdmin)) {
			return nil, authz.ErrForbidden
		}
		if req.Audience != model.AnnAudienceAidSchoolOnly {
			return nil, ErrInvalidAudience
		}
	}

	ann := &model.Announcement{
		AnnouncementID: uuid.NewString(),
		Title:          req.Title,
		Content:        req.Content,
		Scope:          req.Scope,
		Audience:       req.Audience,
		SchoolID:       req.SchoolID,
		Pinned:         req.Pinned,
		CreatedBy:      actor.UserID,
	}
	if req.OrganizationID != "" {
		ann.OrganizationID = &req.OrganizationID
	}
	if err := s.repo.Announcement.Create(ctx, ann); err != nil {
		s.logger.Error("发布公告失败", zap.Error(err))
		return nil, err
	}

	resp := announcementResponse(ann)
	return &resp, nil
}

func (s *announcementService) Update(ctx context.Context, c Caller, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	_, ann, err := s.loadForWrite(ctx, c, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ann.Title = *req.Title
	}
	if req.Content != nil {
		ann.Content = *req.Content
	}
	if req.Pinned != nil {
		ann.Pinned = *req.Pinned
	}
	ann.UpdatedAt = time.Now()

	if err := s.repo.Announcement.Update(ctx, ann); err != nil {
		s.logger.Error("修改公告失败", zap.Error(err))
		return nil, err
	}
	resp := announcementResponse(ann)
	return &resp, nil
}

func (s *announcementService) Delete(ctx context.Context, c Caller, id string) error {
	_, _, err := s.loadForWrite(ctx, c, id)
	if err != nil {
		return err
	}
	return s.repo.Announcement.Delete(ctx, id)
}

// loadForWrite 公告的改删权限：作者本人或平台治理方
func (s *announcementService) loadForWrite(ctx context.Context, c Caller, id string) (*authz.Actor, *model.Announcement, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, nil, err
	}

	ann, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAnnouncementNotFound
		}
		return nil, nil, err
	}

	if ann.CreatedBy != actor.UserID && !actor.Caps.CanManagePlatform {
		return nil, nil, authz.ErrForbidden
	}
	return actor, ann, nil
}

func announcementResponse(a *model.Announcement) dto.AnnouncementResponse {
	resp := dto.AnnouncementResponse{
		ID:        a.AnnouncementID,
		Title:     a.Title,
		Content:   a.Content,
		Scope:     a.Scope,
		Audience:  a.Audience,
		SchoolID:  a.SchoolID,
		Pinned:    a.Pinned,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
	if a.OrganizationID != nil {
		resp.OrganizationID = *a.OrganizationID
	}
	return resp
}
