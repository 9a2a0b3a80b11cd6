// Copyright 2025 Caseflow Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errs

import (
	"errors"
	"fmt"
)

// Kind 业务错误种类，闭集，不允许通过错误消息字符串判断错误类型
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error 携带种类的业务错误。Forbidden 时 Module/Action 记录缺失的权限点
type Error struct {
	Kind   Kind
	Msg    string
	Module string
	Action string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is 按种类比较
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New 创建指定种类的业务错误
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf 创建指定种类的业务错误（格式化消息）
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误，保留原因链
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Unauthenticated 请求上下文中没有合法的操作者
func Unauthenticated(msg string) *Error {
	return New(KindUnauthenticated, msg)
}

// Forbidden 已认证但缺少所需权限点
func Forbidden(module, action string) *Error {
	return &Error{
		Kind:   KindForbidden,
		Msg:    fmt.Sprintf("permission %s.%s is required", module, action),
		Module: module,
		Action: action,
	}
}

// NotFound 引用的资源不存在
func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

// Conflict 业务规则冲突（重复激活成员、重复管理员等）
func Conflict(msg string) *Error {
	return New(KindConflict, msg)
}

// Validation 输入不合法，任何写操作之前拦截
func Validation(msg string) *Error {
	return New(KindValidation, msg)
}

// Internal 不期望的内部失败，对外不泄露细节
func Internal(err error) *Error {
	return Wrap(KindInternal, err, "internal error")
}

// KindOf 返回错误的种类，未分类的错误一律视为 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind 判断错误是否属于指定种类
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
