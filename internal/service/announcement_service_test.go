package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

func TestAnnouncementCreatePublicScope(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewAnnouncementService(repo, NewActorResolver(repo), testLogger)

	hq := seedHQAdmin(m)
	got, err := svc.Create(context.Background(), Caller{UserID: hq}, &dto.CreateAnnouncementRequest{
		Title: "平台维护通知", Content: "周日凌晨停机维护",
		Scope: model.AnnScopePublic, Audience: model.AnnAudiencePublicAll,
	})
	if err != nil {
		t.Fatalf("总号发全站公告应成功: %v", err)
	}
	if got.Scope != model.AnnScopePublic {
		t.Fatalf("范围不符, got %s", got.Scope)
	}

	// public 范围受众只能 public_all
	_, err = svc.Create(context.Background(), Caller{UserID: hq}, &dto.CreateAnnouncementRequest{
		Title: "x", Content: "y",
		Scope: model.AnnScopePublic, Audience: model.AnnAudienceCampusAll,
	})
	if !errors.Is(err, ErrInvalidAudience) {
		t.Fatalf("public 范围配 campus_all 受众应被拒绝, got %v", err)
	}

	// 学生没有发布入口
	student := seedStudent(m, "stu-1", "pku")
	_, err = svc.Create(context.Background(), Caller{UserID: student}, &dto.CreateAnnouncementRequest{
		Title: "x", Content: "y",
		Scope: model.AnnScopePublic, Audience: model.AnnAudiencePublicAll,
	})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("学生发公告应被拒绝, got %v", err)
	}
}

func TestAnnouncementCreateCampusScope(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewAnnouncementService(repo, NewActorResolver(repo), testLogger)
	assoc := seedAssocAdmin(m, "pku")

	// 缺 school_id
	_, err := svc.Create(context.Background(), Caller{UserID: assoc}, &dto.CreateAnnouncementRequest{
		Title: "x", Content: "y",
		Scope: model.AnnScopeCampus, Audience: model.AnnAudienceAssociationTeach,
	})
	if !errors.Is(err, ErrScopeFieldMissing) {
		t.Fatalf("campus 范围缺 school_id 应被拒绝, got %v", err)
	}

	// 协会管理员只能面向本协会讲师
	_, err = svc.Create(context.Background(), Caller{UserID: assoc}, &dto.CreateAnnouncementRequest{
		Title: "x", Content: "y",
		Scope: model.AnnScopeCampus, Audience: model.AnnAudienceCampusAll, SchoolID: "pku",
	})
	if !errors.Is(err, ErrInvalidAudience) {
		t.Fatalf("协会管理员发全校受众应被拒绝, got %v", err)
	}

	// 跨校发布被拒
	_, err = svc.Create(context.Background(), Caller{UserID: assoc}, &dto.CreateAnnouncementRequest{
		Title: "x", Content: "y",
		Scope: model.AnnScopeCampus, Audience: model.AnnAudienceAssociationTeach, SchoolID: "thu",
	})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("跨校发布应被拒绝, got %v", err)
	}

	// 本校 + 协会讲师受众
	got, err := svc.Create(context.Background(), Caller{UserID: assoc}, &dto.CreateAnnouncementRequest{
		Title: "排课调整", Content: "本周课程顺延",
		Scope: model.AnnScopeCampus, Audience: model.AnnAudienceAssociationTeach, SchoolID: "pku",
	})
	if err != nil {
		t.Fatalf("协会管理员发本校讲师公告应成功: %v", err)
	}
	if got.SchoolID != "pku" {
		t.Fatalf("公告应落在本校, got %s", got.SchoolID)
	}
}

func TestAnnouncementCreateAidScope(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewAnnouncementService(repo, NewActorResolver(repo), testLogger)
	super := seedSuperadmin(m)

	_, err := svc.Create(context.Background(), Caller{UserID: super}, &dto.CreateAnnouncementRequest{
		Title: "x", Content: "y",
		Scope: model.AnnScopeAid, Audience: model.AnnAudienceAidSchoolOnly,
	})
	if !errors.Is(err, ErrScopeFieldMissing) {
		t.Fatalf("aid 范围缺 organization_id 应被拒绝, got %v", err)
	}

	got, err := svc.Create(context.Background(), Caller{UserID: super}, &dto.CreateAnnouncementRequest{
		Title: "物资清单", Content: "下月教具清单",
		Scope: model.AnnScopeAid, Audience: model.AnnAudienceAidSchoolOnly, OrganizationID: "org-aid-1",
	})
	if err != nil {
		t.Fatalf("超管发受援学校公告应成功: %v", err)
	}
	if got.OrganizationID != "org-aid-1" {
		t.Fatalf("应绑定受援学校组织, got %s", got.OrganizationID)
	}
}

func TestAnnouncementUpdateDeleteOwnership(t *testing.T) {
	m, repo := newTestRepos()
	svc := NewAnnouncementService(repo, NewActorResolver(repo), testLogger)

	assoc := seedAssocAdmin(m, "pku")
	created, err := svc.Create(context.Background(), Caller{UserID: assoc}, &dto.CreateAnnouncementRequest{
		Title: "排课调整", Content: "本周课程顺延",
		Scope: model.AnnScopeCampus, Audience: model.AnnAudienceAssociationTeach, SchoolID: "pku",
	})
	if err != nil {
		t.Fatalf("发布公告应成功: %v", err)
	}

	// 他校管理员不可修改
	other := seedAssocAdmin(m, "thu")
	newTitle := "改标题"
	if _, err := svc.Update(context.Background(), Caller{UserID: other}, created.ID,
		&dto.UpdateAnnouncementRequest{Title: &newTitle}); !errors.Is(err, authz.ErrForbidden) {
		t.Fatalf("他校管理员修改应被拒绝, got %v", err)
	}

	// 发布者可改可删
	updated, err := svc.Update(context.Background(), Caller{UserID: assoc}, created.ID,
		&dto.UpdateAnnouncementRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("发布者修改应成功: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("标题未更新, got %s", updated.Title)
	}

	if err := svc.Delete(context.Background(), Caller{UserID: assoc}, created.ID); err != nil {
		t.Fatalf("发布者删除应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), Caller{UserID: assoc}, created.ID); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("重复删除应报 NotFound, got %v", err)
	}
}
