package http

import (
	"github.com/caseflow/caseflow/pkg/errs"
	"github.com/caseflow/caseflow/pkg/log"
	"github.com/gofiber/fiber/v2"
)

type ResponseErr struct {
	ErrCode int    `json:"code"`
	ErrMsg  any    `json:"errMsg"`
	Path    string `json:"path,omitempty"`
}

// WithRepErrMsg 返回错误码和消息
func WithRepErrMsg(c *fiber.Ctx, code int, errMsg string, path string) error {
	return c.JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    path,
	})
}

// WithRepBizErr 按错误种类映射响应码，取代按消息字符串判断错误类型。
// Internal 不向调用方泄露内部细节，只记日志。
func WithRepBizErr(c *fiber.Ctx, err error) error {
	status := fiber.StatusOK
	resp := InternalError
	msg := resp.Msg

	switch errs.KindOf(err) {
	case errs.KindUnauthenticated:
		status = fiber.StatusUnauthorized
		resp = Unauthorized
		msg = err.Error()
	case errs.KindForbidden:
		status = fiber.StatusForbidden
		resp = PermissionDenied
		msg = err.Error()
	case errs.KindNotFound:
		status = fiber.StatusNotFound
		resp = NotFound
		msg = err.Error()
	case errs.KindConflict:
		status = fiber.StatusConflict
		resp = Conflict
		msg = err.Error()
	case errs.KindValidation:
		status = fiber.StatusBadRequest
		resp = ValidationFailed
		msg = err.Error()
	default:
		status = fiber.StatusInternalServerError
		log.Errorw("internal error", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(ResponseErr{
		ErrCode: resp.Code,
		ErrMsg:  msg,
		Path:    c.Path(),
	})
}
