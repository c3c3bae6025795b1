package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

var ErrUserNotFound = errors.New("用户不存在")

// Caller 一次请求的调用方标识：JWT 主体 + 可选的跨校审计选校
type Caller struct {
	UserID        string
	AuditSchoolID string
}

// ActorResolver 按请求装配鉴权主体。
// 能力集每次重新派生，绝不缓存：角色变更下一个请求即生效。
type ActorResolver interface {
	Resolve(ctx context.Context, c Caller) (*authz.Actor, error)
}

type actorResolver struct {
	repo *repository.Repository
}

// NewActorResolver 创建 ActorResolver 实例
func NewActorResolver(repo *repository.Repository) ActorResolver {
	return &actorResolver{repo: repo}
}

func (r *actorResolver) Resolve(ctx context.Context, c Caller) (*authz.Actor, error) {
	user, err := r.repo.User.GetByID(ctx, c.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	actor := &authz.Actor{
		UserID:          user.UserID,
		BaseRole:        user.Role,
		Active:          user.IsActive,
		IsSuperuser:     user.IsSuperuser,
		SchoolID:        user.SchoolID,
		StudentVerified: user.StudentVerified,
		TeacherVerified: user.TeacherVerified,
		Assignments:     assignmentsOf(user),
	}
	actor.Caps = authz.Derive(actor)

	if c.AuditSchoolID != "" {
		if err := authz.EngageAudit(actor, c.AuditSchoolID); err != nil {
			return nil, err
		}
	}
	return actor, nil
}

// assignmentsOf 把角色分配行解析为鉴权层视图，未知角色代码直接跳过
func assignmentsOf(user *model.User) []authz.Assignment {
	assignments := make([]authz.Assignment, 0, len(user.AdminRoles))
	for _, ar := range user.AdminRoles {
		code, ok := authz.ParseRoleCode(ar.RoleCode)
		if !ok {
			continue
		}
		a := authz.Assignment{Role: code}
		if ar.Organization != nil {
			a.OrgID = ar.Organization.OrgID
			a.OrgType = ar.Organization.Type
			a.SchoolID = ar.Organization.SchoolID
			if ar.Organization.AidSchoolID != nil {
				a.AidSchoolID = *ar.Organization.AidSchoolID
			}
		}
		assignments = append(assignments, a)
	}
	return assignments
}
