package authz

// RoleCode 治理角色代码（封闭集合）
// 原则：所有角色判断走穷举 switch，杜绝散落的字符串比较。
type RoleCode string

const (
	RoleSuperadmin                 RoleCode = "superadmin"
	RoleAssociationHQ              RoleCode = "association_hq"
	RoleUniversityAdmin            RoleCode = "university_admin"
	RoleUniversityAssociationAdmin RoleCode = "university_association_admin"
	RoleAidSchoolAdmin             RoleCode = "aid_school_admin"
)

// ParseRoleCode 解析角色代码，未知代码返回 false
func ParseRoleCode(s string) (RoleCode, bool) {
	switch RoleCode(s) {
	case RoleSuperadmin, RoleAssociationHQ, RoleUniversityAdmin,
		RoleUniversityAssociationAdmin, RoleAidSchoolAdmin:
		return RoleCode(s), true
	}
	return "", false
}

// Global 全局角色不绑定组织
func (r RoleCode) Global() bool {
	switch r {
	case RoleSuperadmin, RoleAssociationHQ:
		return true
	case RoleUniversityAdmin, RoleUniversityAssociationAdmin, RoleAidSchoolAdmin:
		return false
	}
	return false
}

// Assignment 已解析的角色分配：角色 + 组织上下文
// SchoolID / AidSchoolID 从绑定组织冗余解析，避免鉴权时反查组织表。
type Assignment struct {
	Role        RoleCode
	OrgID       string
	OrgType     string
	SchoolID    string
	AidSchoolID string
}
