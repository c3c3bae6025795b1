package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yuanqiamanman-1/6667-sub001/config"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}

	m, repo := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, NewActorResolver(repo), jwtMgr, nil, zap.NewNop())
	return svc, m
}

func seedLoginUser(m *testRepos, username, password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	userID := seedStudent(m, "u-"+username, "pku")
	u := m.users.users[userID]
	u.Username = username
	u.PasswordHash = string(hash)
	return userID
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, m := setupTestAuthService()
	seedLoginUser(m, "zhangsan", "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.RefreshToken == "" {
		t.Error("RefreshToken 不应为空")
	}
	if result.User.Username != "zhangsan" {
		t.Errorf("期望 Username=zhangsan，实际=%s", result.User.Username)
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, m := setupTestAuthService()
	seedLoginUser(m, "zhangsan", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "wrong_password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nonexistent",
		Password: "password123",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, m := setupTestAuthService()
	userID := seedLoginUser(m, "zhangsan", "password123")
	m.users.users[userID].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})

	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("期望 ErrAccountDisabled，实际: %v", err)
	}
}

// ── 刷新测试 ──

func TestRefreshToken_Success(t *testing.T) {
	svc, m := setupTestAuthService()
	seedLoginUser(m, "zhangsan", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Error("刷新后应颁发新 token 对")
	}
}

func TestRefreshToken_InvalidToken(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Refresh(context.Background(), "invalid.token.string")
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestRefreshToken_AccessTokenNotAllowed(t *testing.T) {
	svc, m := setupTestAuthService()
	seedLoginUser(m, "zhangsan", "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 用 access token 当 refresh token 用
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// ── 当前用户测试 ──

func TestMe_Success(t *testing.T) {
	svc, m := setupTestAuthService()
	assoc := seedAssocAdmin(m, "pku")

	me, err := svc.Me(context.Background(), assoc)
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if me.User.ID != assoc {
		t.Errorf("期望用户 %s，实际=%s", assoc, me.User.ID)
	}
	if len(me.AdminRoles) != 1 {
		t.Fatalf("应带出 1 个角色分配, got %d", len(me.AdminRoles))
	}
	if !me.Capabilities.CanManageAssociation || !me.Capabilities.CanAccessAdminPanel {
		t.Error("协会管理员能力集应含协会管理与后台入口")
	}
}

func TestMe_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Me(context.Background(), "no-such")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
