package internal

import "errors"

var (
	// 根目录不存在或无法列出
	ErrDirectoryNotFound = errors.New("directory not found")

	// 单个文件读取、哈希或移动失败
	ErrIO = errors.New("io error")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrTargetMissing = errors.New("undo target missing")
	ErrUndoFailed    = errors.New("undo failed")

	// 已有整理操作正在进行
	ErrBusy = errors.New("another operation is in progress")
)
