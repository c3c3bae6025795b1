package authz

import "errors"

// ErrForbidden 能力或作用域不匹配
// 对作用域外的调用方统一返回本错误，不泄露实体是否存在。
var ErrForbidden = errors.New("无权操作")

// Action 工作流动作（封闭集合）
type Action int

const (
	ActionReviewVerification Action = iota // 审核认证申请
	ActionManageTeacherPool                // 讲师池开关
	ActionCreateTask                       // 发布协会任务
	ActionManageEvents                     // 系统事件流转
	ActionManageOrgs                       // 组织目录写操作
	ActionManageTags                       // 标签字典写操作
	ActionManageAccounts                   // 账号管理（删除用户、管理员分配）
	ActionAdjustPoints                     // 平台侧积分调整
	ActionReviewOnboarding                 // 机构入驻审核
)

// Scope 鉴权作用域：全局或具体高校；审核动作附带申请类型
type Scope struct {
	Global    bool
	SchoolID  string
	VerifType string
}

// GlobalScope 全局作用域
func GlobalScope() Scope { return Scope{Global: true} }

// SchoolScope 校级作用域
func SchoolScope(schoolID string) Scope { return Scope{SchoolID: schoolID} }

// writesAuditedEntity 动作是否写入跨校审计覆盖的实体
// （Organization / VerificationRequest / VolunteerTeacherRecord / AssociationTask）
func writesAuditedEntity(action Action) bool {
	switch action {
	case ActionReviewVerification, ActionManageTeacherPool, ActionCreateTask, ActionManageOrgs:
		return true
	case ActionManageEvents, ActionManageTags, ActionManageAccounts, ActionAdjustPoints, ActionReviewOnboarding:
		return false
	}
	return false
}

// Authorize 鉴权检查：allow 返回 nil，deny 返回 ErrForbidden。
// 仅判定不执行——是否真正阻止变更由调用方负责，但下游每个变更操作都必须先调用本函数。
func Authorize(a *Actor, action Action, scope Scope) error {
	if a == nil || !a.Active {
		return ErrForbidden
	}

	// 审计模式绝对只读：对受审计实体的任何写操作一律拒绝，与其他角色无关
	if a.AuditSchoolID != "" && writesAuditedEntity(action) {
		return ErrForbidden
	}

	switch action {
	case ActionReviewVerification:
		switch scope.VerifType {
		case "general_basic":
			// 全局审核：超管或总号
			if a.Superadmin() || a.HasRole(RoleAssociationHQ) {
				return nil
			}
		case "volunteer_teacher":
			// 目标高校的协会管理员；超管兜底
			if a.Superadmin() || a.HasRoleForSchool(RoleUniversityAssociationAdmin, scope.SchoolID) {
				return nil
			}
		}
		return ErrForbidden

	case ActionManageTeacherPool, ActionCreateTask:
		if a.Superadmin() || a.HasRoleForSchool(RoleUniversityAssociationAdmin, scope.SchoolID) {
			return nil
		}
		return ErrForbidden

	case ActionManageEvents, ActionAdjustPoints:
		if a.Caps.CanManagePlatform {
			return nil
		}
		return ErrForbidden

	case ActionManageOrgs, ActionManageTags, ActionManageAccounts:
		if a.Superadmin() {
			return nil
		}
		return ErrForbidden

	case ActionReviewOnboarding:
		if a.Superadmin() || a.HasRole(RoleAssociationHQ) {
			return nil
		}
		return ErrForbidden
	}

	return ErrForbidden
}
