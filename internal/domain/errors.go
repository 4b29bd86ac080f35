package domain

import (
	"errors"
	"fmt"
)

// ErrStateNotFound 持久层中尚无已保存的应用状态
var ErrStateNotFound = errors.New("app state not found")

// LockedWeekError 对已锁定周的变更被拒绝（可恢复，状态不变）
type LockedWeekError struct {
	Week int
}

func (e *LockedWeekError) Error() string {
	return fmt.Sprintf("week %d is locked", e.Week+1)
}

// VersionNotFoundError 引用的版本键不存在（可恢复）
type VersionNotFoundError struct {
	Week int
	Key  string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %s not found for week %d", e.Key, e.Week+1)
}

// ValidationError 输入校验失败（日期范围、空名称、缺勤冲突等，可恢复）
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ImportFormatError 导入数据缺少必需的结构（可恢复，状态不变）
type ImportFormatError struct {
	Reason string
}

func (e *ImportFormatError) Error() string {
	return "invalid import data: " + e.Reason
}
