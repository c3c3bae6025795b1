package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

// ── 管理后台业务错误 ──

var (
	ErrUnknownRole        = errors.New("未知的角色代码")
	ErrRoleConflict       = errors.New("超管账号不可叠加其他角色")
	ErrPasswordRequired   = errors.New("新建用户必须提供密码")
	ErrSchoolNameRequired = errors.New("作用域角色必须提供学校名称")
	ErrAssignmentNotFound = errors.New("角色分配不存在")
	ErrSelfDelete         = errors.New("不能删除当前登录账号")
	ErrOnboardingNotFound = errors.New("入驻申请不存在")
)

// AdminService 管理后台业务接口
type AdminService interface {
	ListUsers(ctx context.Context, c Caller, req *dto.AdminUserListRequest) ([]dto.UserResponse, int64, error)
	// DeleteUser 硬删除；若删除的是某高校最后一名校级管理员，
	// 撤销该校全部学生/讲师认证标记（该校从跨校看板自然消失）。
	DeleteUser(ctx context.Context, c Caller, userID string) error
	ListOrgAdmins(ctx context.Context, c Caller) ([]dto.OrgAdminResponse, error)
	CreateOrgAdmin(ctx context.Context, c Caller, req *dto.CreateOrgAdminRequest) (*dto.OrgAdminResponse, error)
	DeleteOrgAdmin(ctx context.Context, c Caller, assignmentID string) error
	PurgeOrphans(ctx context.Context, c Caller, req *dto.PurgeOrphansRequest) (*dto.PurgeOrphansResponse, error)

	SubmitOnboarding(ctx context.Context, c Caller, req *dto.SubmitOnboardingRequest) (*dto.OnboardingResponse, error)
	ListOnboarding(ctx context.Context, c Caller, req *dto.OnboardingListRequest) ([]dto.OnboardingResponse, int64, error)
	ReviewOnboarding(ctx context.Context, c Caller, id string, req *dto.ReviewOnboardingRequest) (*dto.OnboardingResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, actors: actors, logger: logger}
}

func (s *adminService) authorize(ctx context.Context, c Caller) (*authz.Actor, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionManageAccounts, authz.GlobalScope()); err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *adminService) ListUsers(ctx context.Context, c Caller, req *dto.AdminUserListRequest) ([]dto.UserResponse, int64, error) {
	if _, err := s.authorize(ctx, c); err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.User.List(ctx, repository.UserFilter{
		Keyword:         req.Keyword,
		Role:            req.Role,
		IncludeInactive: req.IncludeInactive,
		Offset:          req.GetOffset(),
		Limit:           req.GetPageSize(),
	})
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, userResponse(&users[i]))
	}
	return result, total, nil
}

func (s *adminService) DeleteUser(ctx context.Context, c Caller, userID string) error {
	actor, err := s.authorize(ctx, c)
	if err != nil {
		return err
	}
	if actor.UserID == userID {
		return ErrSelfDelete
	}

	target, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if target.IsSuperuser {
		return authz.ErrForbidden
	}

	// 记下目标持有校级管理员角色的高校，删除后检查是否成为无管理员高校
	var adminSchools []string
	for _, ar := range target.AdminRoles {
		if ar.RoleCode == string(authz.RoleUniversityAdmin) && ar.Organization != nil && ar.Organization.SchoolID != "" {
			adminSchools = append(adminSchools, ar.Organization.SchoolID)
		}
	}

	if err := s.repo.User.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("删除用户失败", zap.Error(err), zap.String("user_id", userID))
		return err
	}

	for _, schoolID := range adminSchools {
		count, err := s.repo.AdminRole.CountByRoleAndSchool(ctx, string(authz.RoleUniversityAdmin), schoolID)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := s.repo.User.RevokeSchoolVerifications(ctx, schoolID); err != nil {
				return err
			}
			s.logger.Info("高校失去最后一名管理员，认证标记已撤销", zap.String("school_id", schoolID))
		}
	}
	return nil
}

func (s *adminService) ListOrgAdmins(ctx context.Context, c Caller) ([]dto.OrgAdminResponse, error) {
	if _, err := s.authorize(ctx, c); err != nil {
		return nil, err
	}

	assignments, err := s.repo.AdminRole.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(assignments))
	for i := range assignments {
		ids = append(ids, assignments[i].UserID)
	}
	users, err := s.repo.User.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for i := range users {
		byID[users[i].UserID] = &users[i]
	}

	result := make([]dto.OrgAdminResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		resp := dto.OrgAdminResponse{
			AssignmentID: a.AssignmentID,
			UserID:       a.UserID,
			RoleCode:     a.RoleCode,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		}
		if a.Organization != nil {
			resp.Organization = orgBrief(a.Organization)
		}
		if u, ok := byID[a.UserID]; ok {
			resp.Username = u.Username
			resp.Email = u.Email
			resp.FullName = u.FullName
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *adminService) CreateOrgAdmin(ctx context.Context, c Caller, req *dto.CreateOrgAdminRequest) (*dto.OrgAdminResponse, error) {
	if _, err := s.authorize(ctx, c); err != nil {
		return nil, err
	}

	roleCode, ok := authz.ParseRoleCode(req.RoleCode)
	if !ok {
		return nil, ErrUnknownRole
	}

	user, err := s.getOrCreateAdminUser(ctx, req)
	if err != nil {
		return nil, err
	}

	// 超管分配排他：与任何其他角色互斥，分配时拦截而非事后清理
	existing, err := s.repo.AdminRole.ListByUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if roleCode == authz.RoleSuperadmin && len(existing) > 0 {
		return nil, ErrRoleConflict
	}
	if user.IsSuperuser && roleCode != authz.RoleSuperadmin {
		return nil, ErrRoleConflict
	}
	for _, a := range existing {
		if a.RoleCode == string(authz.RoleSuperadmin) {
			return nil, ErrRoleConflict
		}
	}

	assignment := &model.AdminRoleAssignment{
		AssignmentID: uuid.NewString(),
		UserID:       user.UserID,
		RoleCode:     string(roleCode),
	}

	var org *model.Organization
	if !roleCode.Global() {
		org, err = s.getOrCreateOrgForRole(ctx, roleCode, req)
		if err != nil {
			return nil, err
		}

		// 幂等：同组织下已有分配直接返回
		for i := range existing {
			if existing[i].OrganizationID != nil && *existing[i].OrganizationID == org.OrgID {
				return s.orgAdminResponse(&existing[i], user, org), nil
			}
		}
		assignment.OrganizationID = &org.OrgID
	} else {
		for i := range existing {
			if existing[i].RoleCode == string(roleCode) {
				return s.orgAdminResponse(&existing[i], user, nil), nil
			}
		}
	}

	if err := s.repo.AdminRole.Create(ctx, assignment); err != nil {
		s.logger.Error("创建角色分配失败", zap.Error(err))
		return nil, err
	}

	// 用户档案跟随作用域角色归属
	user.Role = model.UserRoleGovernance
	if org != nil {
		user.OrganizationID = &org.OrgID
		if org.SchoolID != "" {
			user.SchoolID = org.SchoolID
		}
	}
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.orgAdminResponse(assignment, user, org), nil
}

func (s *adminService) getOrCreateAdminUser(ctx context.Context, req *dto.CreateOrgAdminRequest) (*model.User, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = &model.User{
		UserID:           uuid.NewString(),
		Username:         req.Username,
		Email:            req.Email,
		PasswordHash:     string(hash),
		FullName:         req.FullName,
		Role:             model.UserRoleGovernance,
		IsActive:         true,
		OnboardingStatus: model.OnboardingApproved,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminService) getOrCreateOrgForRole(ctx context.Context, roleCode authz.RoleCode, req *dto.CreateOrgAdminRequest) (*model.Organization, error) {
	var orgType string
	switch roleCode {
	case authz.RoleUniversityAdmin:
		orgType = model.OrgTypeUniversity
	case authz.RoleUniversityAssociationAdmin:
		orgType = model.OrgTypeAssociation
	case authz.RoleAidSchoolAdmin:
		orgType = model.OrgTypeAidSchool
	default:
		return nil, ErrUnknownRole
	}

	if orgType == model.OrgTypeAidSchool {
		aidID := req.AidSchoolID
		if aidID == "" {
			if req.SchoolName == "" {
				return nil, ErrSchoolNameRequired
			}
			aidID = repository.DeriveSchoolCode("aid", req.SchoolName)
		}
		org, err := s.repo.Org.FirstByAidSchool(ctx, aidID)
		if err == nil {
			return org, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		org = &model.Organization{
			OrgID:       uuid.NewString(),
			Type:        orgType,
			DisplayName: req.SchoolName,
			AidSchoolID: &aidID,
			Certified:   true,
		}
		return org, s.repo.Org.Create(ctx, org)
	}

	if req.SchoolName == "" {
		return nil, ErrSchoolNameRequired
	}
	schoolID := repository.DeriveSchoolCode("uni", req.SchoolName)
	org, err := s.repo.Org.FirstByTypeSchool(ctx, orgType, schoolID)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	org = &model.Organization{
		OrgID:       uuid.NewString(),
		Type:        orgType,
		DisplayName: req.SchoolName,
		SchoolID:    schoolID,
		Certified:   true,
	}
	return org, s.repo.Org.Create(ctx, org)
}

func (s *adminService) orgAdminResponse(a *model.AdminRoleAssignment, user *model.User, org *model.Organization) *dto.OrgAdminResponse {
	resp := &dto.OrgAdminResponse{
		AssignmentID: a.AssignmentID,
		UserID:       user.UserID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		RoleCode:     a.RoleCode,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
	if org != nil {
		resp.Organization = orgBrief(org)
	} else if a.Organization != nil {
		resp.Organization = orgBrief(a.Organization)
	}
	return resp
}

func (s *adminService) DeleteOrgAdmin(ctx context.Context, c Caller, assignmentID string) error {
	if _, err := s.authorize(ctx, c); err != nil {
		return err
	}

	assignment, err := s.repo.AdminRole.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if err := s.repo.AdminRole.Delete(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	// 撤掉的是某高校最后一名校级管理员时同样撤销该校认证标记
	if assignment.RoleCode == string(authz.RoleUniversityAdmin) &&
		assignment.Organization != nil && assignment.Organization.SchoolID != "" {
		schoolID := assignment.Organization.SchoolID
		count, err := s.repo.AdminRole.CountByRoleAndSchool(ctx, string(authz.RoleUniversityAdmin), schoolID)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := s.repo.User.RevokeSchoolVerifications(ctx, schoolID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *adminService) PurgeOrphans(ctx context.Context, c Caller, req *dto.PurgeOrphansRequest) (*dto.PurgeOrphansResponse, error) {
	if _, err := s.authorize(ctx, c); err != nil {
		return nil, err
	}

	uniSchools, err := s.repo.Org.ListUniversitySchoolIDs(ctx)
	if err != nil {
		return nil, err
	}
	adminSchools, err := s.repo.AdminRole.SchoolsWithRole(ctx, string(authz.RoleUniversityAdmin))
	if err != nil {
		return nil, err
	}

	var orphans []string
	for _, schoolID := range uniSchools {
		if _, ok := adminSchools[schoolID]; !ok {
			orphans = append(orphans, schoolID)
		}
	}

	resp := &dto.PurgeOrphansResponse{DryRun: req.DryRun, SchoolIDs: orphans}
	if req.DryRun {
		return resp, nil
	}

	for _, schoolID := range orphans {
		if err := s.repo.Org.DeleteBySchool(ctx, schoolID); err != nil {
			return nil, err
		}
		if err := s.repo.User.RevokeSchoolVerifications(ctx, schoolID); err != nil {
			return nil, err
		}
		resp.Purged++
	}
	return resp, nil
}

// ── 机构入驻 ──

func (s *adminService) SubmitOnboarding(ctx context.Context, c Caller, req *dto.SubmitOnboardingRequest) (*dto.OnboardingResponse, error) {
	user, err := s.repo.User.GetByID(ctx, c.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, authz.ErrForbidden
	}

	request := &model.OnboardingRequest{
		RequestID:    uuid.NewString(),
		OrgType:      req.OrgType,
		SchoolName:   req.SchoolName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		UserID:       user.UserID,
		EvidenceRefs: evidenceRefs(req.EvidenceRefs),
		Status:       model.ReviewStatusPending,
	}
	if req.AssociationName != "" {
		request.AssociationName = &req.AssociationName
	}
	if req.ContactPhone != "" {
		request.ContactPhone = &req.ContactPhone
	}
	if err := s.repo.Onboarding.Create(ctx, request); err != nil {
		s.logger.Error("创建入驻申请失败", zap.Error(err))
		return nil, err
	}

	user.OnboardingStatus = model.OnboardingPending
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := onboardingResponse(request)
	return &resp, nil
}

func (s *adminService) ListOnboarding(ctx context.Context, c Caller, req *dto.OnboardingListRequest) ([]dto.OnboardingResponse, int64, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, 0, err
	}
	if err := authz.Authorize(actor, authz.ActionReviewOnboarding, authz.GlobalScope()); err != nil {
		return nil, 0, err
	}

	list, total, err := s.repo.Onboarding.List(ctx, repository.OnboardingFilter{
		Status: req.Status,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.OnboardingResponse, 0, len(list))
	for i := range list {
		result = append(result, onboardingResponse(&list[i]))
	}
	return result, total, nil
}

func (s *adminService) ReviewOnboarding(ctx context.Context, c Caller, id string, req *dto.ReviewOnboardingRequest) (*dto.OnboardingResponse, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionReviewOnboarding, authz.GlobalScope()); err != nil {
		return nil, err
	}

	reason := req.Reason
	if !req.Approve && reason == "" {
		reason = DefaultRejectReason
	}

	reviewed, err := s.repo.Onboarding.ApplyReview(ctx, id, req.Approve, actor.UserID, reason)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOnboardingNotFound
		}
		return nil, err
	}
	resp := onboardingResponse(reviewed)
	return &resp, nil
}

func onboardingResponse(r *model.OnboardingRequest) dto.OnboardingResponse {
	resp := dto.OnboardingResponse{
		ID:           r.RequestID,
		OrgType:      r.OrgType,
		SchoolName:   r.SchoolName,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		UserID:       r.UserID,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	resp.EvidenceRefs = make([]dto.EvidenceRefInput, 0, len(r.EvidenceRefs))
	for _, ref := range r.EvidenceRefs {
		resp.EvidenceRefs = append(resp.EvidenceRefs, dto.EvidenceRefInput{ID: ref.ID, Name: ref.Name})
	}
	if r.AssociationName != nil {
		resp.AssociationName = *r.AssociationName
	}
	if r.ContactPhone != nil {
		resp.ContactPhone = *r.ContactPhone
	}
	if r.ReviewedBy != nil {
		resp.ReviewedBy = *r.ReviewedBy
	}
	if r.ReviewedAt != nil {
		resp.ReviewedAt = r.ReviewedAt.Format(time.RFC3339)
	}
	if r.RejectedReason != nil {
		resp.RejectedReason = *r.RejectedReason
	}
	return resp
}
