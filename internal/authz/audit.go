package authz

import "errors"

// ErrAuditNotAllowed 调用方不具备跨校审计能力
var ErrAuditNotAllowed = errors.New("无跨校审计权限")

// EngageAudit 在当前请求上挂载跨校审计作用域。
// 审计作用域只对本次请求生效，随 Actor 一起构造、一起丢弃，不落任何存储。
// 挂载成功后读操作可越过校级隔离，写操作在 Authorize 中被整体拒绝。
func EngageAudit(a *Actor, schoolID string) error {
	if a == nil || !a.Active {
		return ErrAuditNotAllowed
	}
	if !a.Caps.CanAuditCrossCampus {
		return ErrAuditNotAllowed
	}
	if schoolID == "" {
		return ErrAuditNotAllowed
	}
	a.AuditSchoolID = schoolID
	return nil
}

// AuditEngaged 当前请求是否处于审计模式
func (a *Actor) AuditEngaged() bool {
	return a != nil && a.AuditSchoolID != ""
}

// VisibleSchoolID 读路径的有效校级作用域：
// 审计模式下取被审计高校，否则取调用方自身归属的高校。
func (a *Actor) VisibleSchoolID() string {
	if a.AuditEngaged() {
		return a.AuditSchoolID
	}
	return a.SchoolID
}
