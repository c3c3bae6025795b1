package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

// ── 组织目录业务错误 ──

var (
	ErrOrgNotFound = errors.New("组织不存在")
	ErrOrgExists   = errors.New("同类型组织已存在")
	ErrOrgKey      = errors.New("缺少组织业务键")
)

// OrgService 组织目录业务接口
type OrgService interface {
	List(ctx context.Context, req *dto.OrgListRequest) ([]dto.OrgResponse, error)
	Get(ctx context.Context, id string) (*dto.OrgResponse, error)
	Resolve(ctx context.Context, req *dto.OrgResolveRequest) (*dto.OrgResponse, error)
	Create(ctx context.Context, c Caller, req *dto.CreateOrgRequest) (*dto.OrgResponse, error)
	// Board 跨校看板：拥有校级管理员的高校及其大学/协会名称
	Board(ctx context.Context, c Caller) ([]dto.CampusBoardEntry, error)
}

type orgService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewOrgService 创建 OrgService 实例
func NewOrgService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) OrgService {
	return &orgService{repo: repo, actors: actors, logger: logger}
}

func (s *orgService) List(ctx context.Context, req *dto.OrgListRequest) ([]dto.OrgResponse, error) {
	orgs, err := s.repo.Org.List(ctx, repository.OrgFilter{
		Type:      req.Type,
		Certified: req.Certified,
	})
	if err != nil {
		s.logger.Error("查询组织列表失败", zap.Error(err))
		return nil, err
	}

	// require_admin：只保留至少有一个校级管理员的高校组织
	var adminSchools map[string]int
	if req.RequireAdmin {
		adminSchools, err = s.repo.AdminRole.SchoolsWithRole(ctx, string(authz.RoleUniversityAdmin))
		if err != nil {
			return nil, err
		}
	}

	result := make([]dto.OrgResponse, 0, len(orgs))
	for i := range orgs {
		if req.RequireAdmin {
			if _, ok := adminSchools[orgs[i].SchoolID]; !ok {
				continue
			}
		}
		result = append(result, orgResponse(&orgs[i]))
	}
	return result, nil
}

func (s *orgService) Get(ctx context.Context, id string) (*dto.OrgResponse, error) {
	org, err := s.repo.Org.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	resp := orgResponse(org)
	return &resp, nil
}

func (s *orgService) Resolve(ctx context.Context, req *dto.OrgResolveRequest) (*dto.OrgResponse, error) {
	var org *model.Organization
	var err error
	switch {
	case req.Type == model.OrgTypeAidSchool && req.AidSchoolID != "":
		org, err = s.repo.Org.FirstByAidSchool(ctx, req.AidSchoolID)
	case req.SchoolID != "":
		org, err = s.repo.Org.FirstByTypeSchool(ctx, req.Type, req.SchoolID)
	default:
		return nil, ErrOrgKey
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, err
	}
	resp := orgResponse(org)
	return &resp, nil
}

func (s *orgService) Create(ctx context.Context, c Caller, req *dto.CreateOrgRequest) (*dto.OrgResponse, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionManageOrgs, authz.GlobalScope()); err != nil {
		return nil, err
	}

	// 业务键查重：(type, school_id) / aid_school_id / (type, display_name)
	if req.SchoolID != "" {
		if _, err := s.repo.Org.FirstByTypeSchool(ctx, req.Type, req.SchoolID); err == nil {
			return nil, ErrOrgExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if req.AidSchoolID != "" {
		if _, err := s.repo.Org.FirstByAidSchool(ctx, req.AidSchoolID); err == nil {
			return nil, ErrOrgExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if _, err := s.repo.Org.FirstByTypeName(ctx, req.Type, req.DisplayName); err == nil {
		return nil, ErrOrgExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	org := &model.Organization{
		OrgID:       uuid.NewString(),
		Type:        req.Type,
		DisplayName: req.DisplayName,
		SchoolID:    req.SchoolID,
		Certified:   req.Certified,
	}
	if req.AidSchoolID != "" {
		org.AidSchoolID = &req.AidSchoolID
	}
	if err := s.repo.Org.Create(ctx, org); err != nil {
		s.logger.Error("创建组织失败", zap.Error(err))
		return nil, err
	}

	resp := orgResponse(org)
	return &resp, nil
}

func (s *orgService) Board(ctx context.Context, c Caller) ([]dto.CampusBoardEntry, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	// 跨校聚合视图仅平台治理方可见
	if !actor.Caps.CanManagePlatform {
		return nil, authz.ErrForbidden
	}

	adminSchools, err := s.repo.AdminRole.SchoolsWithRole(ctx, string(authz.RoleUniversityAdmin))
	if err != nil {
		return nil, err
	}

	orgs, err := s.repo.Org.List(ctx, repository.OrgFilter{})
	if err != nil {
		return nil, err
	}
	uniNames := make(map[string]string)
	assocNames := make(map[string]string)
	for i := range orgs {
		switch orgs[i].Type {
		case model.OrgTypeUniversity:
			uniNames[orgs[i].SchoolID] = orgs[i].DisplayName
		case model.OrgTypeAssociation:
			assocNames[orgs[i].SchoolID] = orgs[i].DisplayName
		}
	}

	board := make([]dto.CampusBoardEntry, 0, len(adminSchools))
	for schoolID, count := range adminSchools {
		board = append(board, dto.CampusBoardEntry{
			SchoolID:        schoolID,
			UniversityName:  uniNames[schoolID],
			AssociationName: assocNames[schoolID],
			AdminCount:      count,
		})
	}
	sort.Slice(board, func(i, j int) bool { return board[i].SchoolID < board[j].SchoolID })
	return board, nil
}

func orgResponse(org *model.Organization) dto.OrgResponse {
	resp := dto.OrgResponse{
		ID:          org.OrgID,
		Type:        org.Type,
		DisplayName: org.DisplayName,
		SchoolID:    org.SchoolID,
		Certified:   org.Certified,
		CreatedAt:   org.CreatedAt.Format(time.RFC3339),
	}
	if org.AidSchoolID != nil {
		resp.AidSchoolID = *org.AidSchoolID
	}
	return resp
}
