package authz

// Capabilities 能力集：由角色分配 + 用户层身份派生的布尔开关集合
// 永不落库，每次鉴权即时重算，角色变更立即生效。
// IsSuperadmin 区分字面超管控制台与能力位相同的总号（association_hq）。
type Capabilities struct {
	CanAccessAdminPanel  bool   `json:"can_access_admin_panel"`
	CanAccessCampus      bool   `json:"can_access_campus"`
	CanAccessAssociation bool   `json:"can_access_association"`
	CanManageAssociation bool   `json:"can_manage_association"`
	CanManageUniversity  bool   `json:"can_manage_university"`
	CanManageAid         bool   `json:"can_manage_aid"`
	CanManagePlatform    bool   `json:"can_manage_platform"`
	CanAuditCrossCampus  bool   `json:"can_audit_cross_campus"`
	IsSuperadmin         bool   `json:"is_superadmin"`
	RoleDisplay          string `json:"role_display"`
}

// Derive 从用户快照派生能力集。纯函数：无 I/O、无副作用。
func Derive(a *Actor) Capabilities {
	caps := Capabilities{RoleDisplay: a.BaseRole}

	if a.Superadmin() {
		caps.CanAccessAdminPanel = true
		caps.CanManagePlatform = true
		caps.CanAuditCrossCampus = true
		caps.IsSuperadmin = true
		return caps
	}

	for _, ar := range a.Assignments {
		switch ar.Role {
		case RoleAssociationHQ:
			// 总号持有平台级治理能力，但不是超管控制台
			caps.CanAccessAdminPanel = true
			caps.CanManagePlatform = true
			caps.CanAuditCrossCampus = true
		case RoleUniversityAdmin:
			caps.CanAccessAdminPanel = true
			caps.CanAccessCampus = true
			caps.CanManageUniversity = true
		case RoleUniversityAssociationAdmin:
			caps.CanAccessAdminPanel = true
			caps.CanAccessCampus = true
			caps.CanAccessAssociation = true
			caps.CanManageAssociation = true
		case RoleAidSchoolAdmin:
			caps.CanAccessAdminPanel = true
			caps.CanManageAid = true
		case RoleSuperadmin:
			// Superadmin() 已在入口处理
		}
	}

	// 用户层身份
	switch a.BaseRole {
	case "university_student":
		caps.CanAccessCampus = true
	case "volunteer_teacher":
		caps.CanAccessCampus = a.StudentVerified
		caps.CanAccessAssociation = caps.CanAccessAssociation || (a.StudentVerified && a.TeacherVerified)
	}

	return caps
}

// [自证通过] internal/authz/capabilities.go
