package mover

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/history"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// Engine 移动单个文件，处理重名并写入撤销日志
type Engine struct {
	fs  afero.Fs
	log *history.Log
	now func() time.Time
}

func New(fs afero.Fs, log *history.Log) *Engine {
	return &Engine{
		fs:  fs,
		log: log,
		now: time.Now,
	}
}

// SetClock 替换时间来源，便于测试
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Move 将 src 移动到 destDir/fileName
// 目标已存在时依次尝试 "name (1).ext"、"name (2).ext"，从不覆盖已有文件
// 返回文件最终所在路径
func (e *Engine) Move(src, destDir, fileName string) (string, error) {
	if err := e.fs.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("%w: 创建目录失败 %s: %w", internal.ErrIO, destDir, err)
	}

	dst := filepath.Join(destDir, fileName)
	if filepath.Clean(src) == dst {
		logger.Get().Debug().Msgf("文件已在目标位置: %s", src)
		return dst, nil
	}

	// 移动前先记录，失败时再撤掉
	action := e.log.Record(src, dst, e.now())
	if action == nil {
		logger.Get().Warn().Msgf("撤销日志已满（%d 条），本次移动不会被记录: %s", e.log.Capacity(), src)
	}

	exists, err := afero.Exists(e.fs, dst)
	if err != nil {
		e.log.Drop(action)
		return "", fmt.Errorf("%w: 检查文件是否存在失败: %w", internal.ErrIO, err)
	}

	if exists {
		unique, err := UniquePath(e.fs, destDir, fileName)
		if err != nil {
			e.log.Drop(action)
			return "", err
		}

		logger.Get().Debug().
			Str("original_path", dst).
			Str("new_path", unique).
			Msg("文件名冲突，自动重命名")

		dst = unique
		e.log.UpdateNewPath(action, dst)
	}

	if err := e.Relocate(src, dst); err != nil {
		e.log.Drop(action)
		logger.Get().Error().Err(err).Msgf("移动文件失败: %s", src)
		return "", err
	}

	logger.Get().Debug().
		Str("source", src).
		Str("destination", dst).
		Msg("文件移动完成")

	return dst, nil
}

// Relocate 使用 rename 移动文件，跨设备失败时复制后删除
// 不检查也不处理重名，调用方需保证 dst 不存在
func (e *Engine) Relocate(src, dst string) error {
	renameErr := e.fs.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	// 源文件不存在时复制也没有意义
	if _, err := e.fs.Stat(src); err != nil {
		return fmt.Errorf("%w: 移动 %s 失败: %w", internal.ErrIO, src, renameErr)
	}

	logger.Get().Debug().
		Err(renameErr).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	if err := e.copyFile(src, dst); err != nil {
		return fmt.Errorf("%w: 移动 %s 失败: %w", internal.ErrIO, src, errors.Join(renameErr, err))
	}

	if err := e.fs.Remove(src); err != nil {
		// 删除源文件失败时撤掉副本，保持只有一份
		_ = e.fs.Remove(dst)
		return fmt.Errorf("%w: 删除原文件失败: %w", internal.ErrIO, err)
	}

	return nil
}

func (e *Engine) copyFile(src, dst string) error {
	sourceFile, err := e.fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	destFile, err := e.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	buf := make([]byte, internal.DefaultBufferSize)
	if _, err := io.CopyBuffer(destFile, sourceFile, buf); err != nil {
		destFile.Close()
		_ = e.fs.Remove(dst)
		return fmt.Errorf("复制文件内容失败: %w", err)
	}

	if err := destFile.Close(); err != nil {
		_ = e.fs.Remove(dst)
		return fmt.Errorf("关闭目标文件失败: %w", err)
	}

	_ = e.fs.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// UniquePath 在 destDir 中为 fileName 生成不存在的路径: "stem (n).ext"
func UniquePath(fs afero.Fs, destDir, fileName string) (string, error) {
	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)

	for i := 1; ; i++ {
		candidate := filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: 检查文件是否存在失败: %w", internal.ErrIO, err)
		}
		if !exists {
			return candidate, nil
		}
	}
}
