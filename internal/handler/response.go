package handler

import (
	"errors"
	"net/http"

	"github.com/Awaismaz/bait-ul-rizq/internal/logic"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// FailFromError 按错误类型映射HTTP状态码：
// 校验错误 400、记录不存在 404、引用保护 409，其余一律 500。
// 越权访问不会走到这里——范围过滤直接返回空集。
func FailFromError(c *gin.Context, err error) {
	var ve *logic.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: ve.Message,
			Data:    validationDetail(ve),
		})
	case errors.Is(err, logic.ErrInvalidDonorId), errors.Is(err, logic.ErrInvalidTransition):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrProtected):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, logic.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

// validationDetail 附带剩余可分配金额，供前端直接展示
func validationDetail(ve *logic.ValidationError) interface{} {
	if ve.Remaining == nil {
		return gin.H{"field": ve.Field}
	}
	return gin.H{
		"field":     ve.Field,
		"remaining": ve.Remaining.StringFixed(2),
		"currency":  ve.Currency,
	}
}
