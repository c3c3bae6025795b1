package errors

import "errors"

// 状态机与账本的共享业务错误。
// Repository 层在 CAS 更新失败时返回，Service 层原样透传，Handler 层翻译为 HTTP 状态码。

// ErrAlreadyReviewed 认证申请已被审核，不允许二次裁决
var ErrAlreadyReviewed = errors.New("该申请已审核，不能重复操作")

// ErrInvalidTransition 系统事件状态流转不符合 open → ack → closed 的方向
var ErrInvalidTransition = errors.New("非法的事件状态流转")

// ErrInsufficientPoints 积分余额不足，扣减被拒绝
var ErrInsufficientPoints = errors.New("积分余额不足")

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
