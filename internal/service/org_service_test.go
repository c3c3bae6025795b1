package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

func TestOrgCreateRejectsDuplicateBusinessKey(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewOrgService(repo, NewActorResolver(repo), testLogger)
	super := seedSuperadmin(m)

	req := &dto.CreateOrgRequest{
		Type:        model.OrgTypeUniversity,
		DisplayName: "北京大学",
		SchoolID:    "pku",
		Certified:   true,
	}
	if _, err := svc.Create(context.Background(), Caller{UserID: super}, req); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), Caller{UserID: super}, req); !errors.Is(err, ErrOrgExists) {
		t.Fatalf("相同 (type, school_id) 应拒绝, got %v", err)
	}

	// 同类型同名也视为重复
	dup := &dto.CreateOrgRequest{Type: model.OrgTypeUniversity, DisplayName: "北京大学", SchoolID: "pku2"}
	if _, err := svc.Create(context.Background(), Caller{UserID: super}, dup); !errors.Is(err, ErrOrgExists) {
		t.Fatalf("同类型同名应拒绝, got %v", err)
	}
}

func TestOrgCreateRequiresPlatformRole(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewOrgService(repo, NewActorResolver(repo), testLogger)
	assoc := seedAssocAdmin(m, "pku")

	_, err := svc.Create(context.Background(), Caller{UserID: assoc}, &dto.CreateOrgRequest{
		Type: model.OrgTypeUniversity, DisplayName: "某大学", SchoolID: "x",
	})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("协会管理员不可建组织, got %v", err)
	}
}

func TestOrgResolveByBusinessKey(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewOrgService(repo, NewActorResolver(repo), testLogger)

	m.orgs.orgs["org-1"] = &model.Organization{
		OrgID: "org-1", Type: model.OrgTypeUniversity, DisplayName: "北京大学", SchoolID: "pku",
	}

	got, err := svc.Resolve(context.Background(), &dto.OrgResolveRequest{
		Type: model.OrgTypeUniversity, SchoolID: "pku",
	})
	if err != nil {
		t.Fatalf("按业务键解析应成功: %v", err)
	}
	if got.ID != "org-1" {
		t.Fatalf("解析结果不符, got %s", got.ID)
	}

	if _, err := svc.Resolve(context.Background(), &dto.OrgResolveRequest{Type: model.OrgTypeUniversity}); !errors.Is(err, ErrOrgKey) {
		t.Fatalf("缺业务键应报 ErrOrgKey, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), &dto.OrgResolveRequest{
		Type: model.OrgTypeUniversity, SchoolID: "thu",
	}); !errors.Is(err, ErrOrgNotFound) {
		t.Fatalf("未命中应报 NotFound, got %v", err)
	}
}

func TestCampusBoardVisibility(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewOrgService(repo, NewActorResolver(repo), testLogger)

	super := seedSuperadmin(m)
	seedUniversityAdmin(m, "uni-1", "pku")
	assoc := seedAssocAdmin(m, "pku")

	board, err := svc.Board(context.Background(), Caller{UserID: super})
	if err != nil {
		t.Fatalf("平台角色应能查看跨校看板: %v", err)
	}
	if len(board) != 1 || board[0].SchoolID != "pku" || board[0].AdminCount != 1 {
		t.Fatalf("看板应包含 pku 及其管理员数, got %+v", board)
	}
	if board[0].UniversityName == "" || board[0].AssociationName == "" {
		t.Fatalf("看板应补全大学与协会名称, got %+v", board[0])
	}

	if _, err := svc.Board(context.Background(), Caller{UserID: assoc}); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("校级角色不应看到跨校看板, got %v", err)
	}
}
