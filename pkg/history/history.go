package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moyu-x/file-organizer/internal"
)

// FileAction 一次文件移动的记录
type FileAction struct {
	ID           string
	OriginalPath string
	NewPath      string
	Timestamp    time.Time
}

// Log 有界的撤销日志，只在尾部追加和弹出
// 容量已满时新的动作不再记录，已有记录不会被淘汰
type Log struct {
	mu       sync.Mutex
	capacity int
	actions  []*FileAction
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = internal.DefaultUndoCapacity
	}
	return &Log{
		capacity: capacity,
		actions:  make([]*FileAction, 0, capacity),
	}
}

// Record 追加一条待执行的动作；日志已满时返回 nil
func (l *Log) Record(originalPath, newPath string, at time.Time) *FileAction {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.actions) >= l.capacity {
		return nil
	}

	action := &FileAction{
		ID:           uuid.NewString(),
		OriginalPath: originalPath,
		NewPath:      newPath,
		Timestamp:    at,
	}
	l.actions = append(l.actions, action)
	return action
}

// UpdateNewPath 修正动作的目标路径（发生重名时）
func (l *Log) UpdateNewPath(action *FileAction, newPath string) {
	if action == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	action.NewPath = newPath
}

// Drop 移除刚记录的动作，仅当它仍位于尾部时生效
func (l *Log) Drop(action *FileAction) bool {
	if action == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.actions)
	if n == 0 || l.actions[n-1] != action {
		return false
	}
	l.actions[n-1] = nil
	l.actions = l.actions[:n-1]
	return true
}

// Peek 返回最近一条动作的副本
func (l *Log) Peek() (FileAction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.actions) == 0 {
		return FileAction{}, false
	}
	return *l.actions[len(l.actions)-1], true
}

// Pop 移除并返回最近一条动作
func (l *Log) Pop() (FileAction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.actions)
	if n == 0 {
		return FileAction{}, false
	}
	action := *l.actions[n-1]
	l.actions[n-1] = nil
	l.actions = l.actions[:n-1]
	return action, true
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.actions)
}

func (l *Log) Capacity() int {
	return l.capacity
}

func (l *Log) Full() bool {
	return l.Len() >= l.capacity
}

// Snapshot 按时间顺序返回所有动作的副本
func (l *Log) Snapshot() []FileAction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]FileAction, len(l.actions))
	for i, a := range l.actions {
		out[i] = *a
	}
	return out
}
