package service

import (
	"go.uber.org/zap"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
)

var testLogger = zap.NewNop()

// seedSuperadmin 写入一个超管账号并返回 user_id
func seedSuperadmin(m *testRepos) string {
	u := &model.User{
		UserID:      "super-1",
		Username:    "root",
		Email:       "root@cloudedu.cn",
		Role:        model.UserRoleGovernance,
		IsActive:    true,
		IsSuperuser: true,
		AdminRoles: []model.AdminRoleAssignment{
			{AssignmentID: "assign-super-1", UserID: "super-1", RoleCode: "superadmin"},
		},
	}
	m.users.users[u.UserID] = u
	return u.UserID
}

// seedHQAdmin 写入一个总会账号（平台管理 + 跨校审计，但非超管）
func seedHQAdmin(m *testRepos) string {
	u := &model.User{
		UserID:   "hq-1",
		Username: "hq",
		Email:    "hq@cloudedu.cn",
		Role:     model.UserRoleGovernance,
		IsActive: true,
		AdminRoles: []model.AdminRoleAssignment{
			{AssignmentID: "assign-hq-1", UserID: "hq-1", RoleCode: "association_hq"},
		},
	}
	m.users.users[u.UserID] = u
	return u.UserID
}

// seedAssocAdmin 写入某高校的协会管理员，连同其协会组织（certified=true）
func seedAssocAdmin(m *testRepos, schoolID string) string {
	org := &model.Organization{
		OrgID:       "org-assoc-" + schoolID,
		Type:        model.OrgTypeAssociation,
		DisplayName: schoolID + "支教协会",
		SchoolID:    schoolID,
		Certified:   true,
	}
	m.orgs.orgs[org.OrgID] = org

	userID := "assoc-" + schoolID
	u := &model.User{
		UserID:   userID,
		Username: "assoc_" + schoolID,
		Email:    userID + "@cloudedu.cn",
		Role:     model.UserRoleGovernance,
		SchoolID: schoolID,
		IsActive: true,
		AdminRoles: []model.AdminRoleAssignment{
			{
				AssignmentID:   "assign-" + userID,
				UserID:         userID,
				RoleCode:       "university_association_admin",
				OrganizationID: &org.OrgID,
				Organization:   org,
			},
		},
	}
	m.users.users[u.UserID] = u
	return u.UserID
}

// seedStudent 写入一个普通学生账号
func seedStudent(m *testRepos, userID, schoolID string) string {
	u := &model.User{
		UserID:   userID,
		Username: "stu_" + userID,
		Email:    userID + "@stu.cloudedu.cn",
		FullName: "学生" + userID,
		Role:     model.UserRoleGeneralStudent,
		SchoolID: schoolID,
		IsActive: true,
	}
	m.users.users[u.UserID] = u
	return u.UserID
}
