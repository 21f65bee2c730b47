package service

import (
	"errors"
	"fmt"
)

// ErrNotFound 按 ID 查询不到记录
var ErrNotFound = errors.New("记录不存在")

// StoreError 存储层错误（连接失败、约束冲突、非法输入等）
// 操作已回滚，调用方拿到的是空值/false/0 等哨兵结果
type StoreError struct {
	Op      string // 操作名，如 AddCategory
	Message string // 面向用户的提示
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError 调用方参数校验失败，不会到达存储层
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidation 判断是否为参数校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStore 判断是否为存储层错误
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
