package internal

import (
	"fmt"
	"time"
)

// 操作模式
type OperationMode string

const (
	ModeCategory     OperationMode = "category"
	ModeExtension    OperationMode = "extension"
	ModeAlphabetical OperationMode = "alpha"
	ModeDate         OperationMode = "date"
	ModeDuplicates   OperationMode = "duplicates"
)

// 单个文件处理失败的记录
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, ErrIO) 对所有单文件失败成立
func (e *FileError) Is(target error) bool {
	return target == ErrIO
}

// 一次整理/去重操作的统计结果
type OperationResult struct {
	Operation  OperationMode
	Directory  string
	Scanned    int
	Moved      int
	Skipped    int
	Duplicates int
	Failures   []*FileError
	StartTime  time.Time
	EndTime    time.Time
}

// AddFailure 记录一个单文件失败，不中断整个流程
func (r *OperationResult) AddFailure(path, op string, err error) {
	r.Failures = append(r.Failures, &FileError{Path: path, Op: op, Err: err})
}

// Failed 返回失败文件数
func (r *OperationResult) Failed() int {
	return len(r.Failures)
}

// Merge 合并另一次操作（如分类后的去重）的计数和失败记录
func (r *OperationResult) Merge(other *OperationResult) {
	if other == nil {
		return
	}
	r.Moved += other.Moved
	r.Duplicates += other.Duplicates
	r.Failures = append(r.Failures, other.Failures...)
	if other.EndTime.After(r.EndTime) {
		r.EndTime = other.EndTime
	}
}

// 同一摘要的一组文件，Members[0] 为保留者
type HashGroup struct {
	Digest  string
	Members []string
}

// Keeper 返回组内第一个出现的文件，它永远不会被移动
func (g HashGroup) Keeper() string {
	if len(g.Members) == 0 {
		return ""
	}
	return g.Members[0]
}

// IsDuplicate 组内成员超过一个时才需要处理
func (g HashGroup) IsDuplicate() bool {
	return len(g.Members) > 1
}
