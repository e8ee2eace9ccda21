package tui

import (
	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/analyzer"
	"github.com/moyu-x/file-organizer/pkg/organizer"
)

type progressMsg struct {
	done    int
	total   int
	current string
}

// operationDoneMsg 一次操作结束，按 action 只填写对应字段
type operationDoneMsg struct {
	action   action
	result   *internal.OperationResult
	analysis *analyzer.Report
	undo     *organizer.UndoResult
	err      error
}
