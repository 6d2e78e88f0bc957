package logic

import (
	"errors"
	"fmt"

	"github.com/Awaismaz/bait-ul-rizq/internal/model"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrProtected 记录仍被其他数据引用，禁止删除
	ErrProtected = errors.New("记录仍被其他数据引用，禁止删除")
	// ErrInvalidDonorId 捐赠人编号格式不正确（必须为9位数字）
	ErrInvalidDonorId = errors.New("捐赠人编号格式不正确")
	// ErrInvalidTransition 项目状态流转不合法
	ErrInvalidTransition = errors.New("项目状态流转不合法")
)

// ValidationError 业务校验错误。分配超额时携带准确的可分配余额和币种，
// 供调用方直接展示给用户。
type ValidationError struct {
	Field     string
	Message   string
	Remaining *decimal.Decimal
	Currency  model.Currency
}

func (e *ValidationError) Error() string {
	return e.Message
}

// newValidationError 创建普通校验错误
func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// newRemainingError 创建携带剩余可分配金额的校验错误
func newRemainingError(remaining decimal.Decimal, currency model.Currency) *ValidationError {
	return &ValidationError{
		Field:     "amount",
		Message:   fmt.Sprintf("分配金额超过捐赠余额，仅剩 %s %s 可分配", remaining.StringFixed(2), currency),
		Remaining: &remaining,
		Currency:  currency,
	}
}

// IsValidation 判断是否为业务校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
