package constant

import "errors"

// 自定义错误
var (
	// 通用错误
	ErrTokenMissing    = errors.New("未提供mob token")
	ErrInvalidResponse = errors.New("响应格式错误")
)
