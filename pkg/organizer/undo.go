package organizer

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/history"
)

// UndoStatus 一次撤销的结果
type UndoStatus int

const (
	Undone UndoStatus = iota
	NothingToUndo
	TargetMissing
	UndoFailed
)

func (s UndoStatus) String() string {
	switch s {
	case Undone:
		return "undone"
	case NothingToUndo:
		return "nothing to undo"
	case TargetMissing:
		return "target missing"
	case UndoFailed:
		return "undo failed"
	default:
		return fmt.Sprintf("UndoStatus(%d)", int(s))
	}
}

// Err 把状态转换为对应的哨兵错误，Undone 返回 nil
func (s UndoStatus) Err() error {
	switch s {
	case NothingToUndo:
		return internal.ErrNothingToUndo
	case TargetMissing:
		return internal.ErrTargetMissing
	case UndoFailed:
		return internal.ErrUndoFailed
	default:
		return nil
	}
}

type UndoResult struct {
	Status UndoStatus
	Action history.FileAction
}

// Undo 撤销最近一次移动，每次只撤销一步
//
// 目标文件已不存在时仍然弹出该记录并返回 TargetMissing
// 原位置已被占用或移动失败时不弹出，返回 UndoFailed 和具体错误
func (s *Session) Undo() (UndoResult, error) {
	if err := s.begin(); err != nil {
		return UndoResult{Status: UndoFailed}, err
	}
	defer s.end()

	action, ok := s.history.Peek()
	if !ok {
		s.log.Info().Msg("没有可以撤销的操作")
		return UndoResult{Status: NothingToUndo}, nil
	}

	exists, err := afero.Exists(s.fs, action.NewPath)
	if err != nil {
		return UndoResult{Status: UndoFailed, Action: action},
			fmt.Errorf("%w: %w: %w", internal.ErrUndoFailed, internal.ErrIO, err)
	}
	if !exists {
		s.history.Pop()
		s.log.Warn().Msgf("撤销目标已不存在，记录已丢弃: %s", action.NewPath)
		return UndoResult{Status: TargetMissing, Action: action}, nil
	}

	occupied, err := afero.Exists(s.fs, action.OriginalPath)
	if err != nil {
		return UndoResult{Status: UndoFailed, Action: action},
			fmt.Errorf("%w: %w: %w", internal.ErrUndoFailed, internal.ErrIO, err)
	}
	if occupied {
		s.log.Error().Msgf("原位置已有文件，撤销不会覆盖: %s", action.OriginalPath)
		return UndoResult{Status: UndoFailed, Action: action},
			fmt.Errorf("%w: 原位置已被占用: %s", internal.ErrUndoFailed, action.OriginalPath)
	}

	if err := s.fs.MkdirAll(filepath.Dir(action.OriginalPath), 0755); err != nil {
		return UndoResult{Status: UndoFailed, Action: action},
			fmt.Errorf("%w: %w: %w", internal.ErrUndoFailed, internal.ErrIO, err)
	}

	if err := s.mover.Relocate(action.NewPath, action.OriginalPath); err != nil {
		s.log.Error().Err(err).Msgf("撤销失败: %s", action.NewPath)
		return UndoResult{Status: UndoFailed, Action: action},
			fmt.Errorf("%w: %w", internal.ErrUndoFailed, err)
	}

	s.history.Pop()
	s.log.Info().
		Str("from", action.NewPath).
		Str("to", action.OriginalPath).
		Msg("撤销完成")

	return UndoResult{Status: Undone, Action: action}, nil
}
