package authz

// Actor 鉴权主体：一次请求内的用户快照（身份 + 角色分配 + 派生能力）
// 每个请求重新装配，不跨请求缓存。
type Actor struct {
	UserID          string
	BaseRole        string
	Active          bool
	IsSuperuser     bool
	SchoolID        string
	StudentVerified bool
	TeacherVerified bool
	Assignments     []Assignment

	// AuditSchoolID 跨校审计的显式选校；非空即审计模式激活（见 audit.go）
	AuditSchoolID string

	Caps Capabilities
}

// Superadmin 字面超管：is_superuser 标记或持有 superadmin 角色分配
func (a *Actor) Superadmin() bool {
	if a.IsSuperuser {
		return true
	}
	for _, ar := range a.Assignments {
		if ar.Role == RoleSuperadmin {
			return true
		}
	}
	return false
}

// HasRole 是否持有指定角色（不限组织）
func (a *Actor) HasRole(code RoleCode) bool {
	for _, ar := range a.Assignments {
		if ar.Role == code {
			return true
		}
	}
	return false
}

// HasRoleForSchool 是否持有绑定到指定高校的作用域角色
func (a *Actor) HasRoleForSchool(code RoleCode, schoolID string) bool {
	if schoolID == "" {
		return false
	}
	for _, ar := range a.Assignments {
		if ar.Role == code && ar.SchoolID == schoolID {
			return true
		}
	}
	return false
}

// ManagedSchoolID 返回指定角色管理的高校（多个时取第一个）
func (a *Actor) ManagedSchoolID(code RoleCode) string {
	for _, ar := range a.Assignments {
		if ar.Role == code && ar.SchoolID != "" {
			return ar.SchoolID
		}
	}
	return ""
}
