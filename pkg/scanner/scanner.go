package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// Entry 目录下的一个直接子项
type Entry struct {
	Name        string
	Path        string
	IsDir       bool
	Extension   string
	Size        int64
	ModTime     time.Time
	CreatedTime time.Time
	regular     bool
}

// IsRegular 是否为普通文件（目录、符号链接、设备文件等返回 false）
func (e Entry) IsRegular() bool {
	return e.regular
}

// Lister 只列出目录的直接子项，不递归
type Lister struct {
	fs            afero.Fs
	IncludeHidden bool
}

func NewLister(fs afero.Fs) *Lister {
	return &Lister{
		fs:            fs,
		IncludeHidden: true,
	}
}

// List 枚举 dir 的直接子项（文件和目录），按名称排序
func (l *Lister) List(dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("列出目录失败: %s", dir)
		return nil, fmt.Errorf("%w: %s: %w", internal.ErrDirectoryNotFound, dir, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}
		if !l.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		entries = append(entries, l.newEntry(dir, info))
	}

	logger.Get().Debug().Msgf("目录 %s 共 %d 项", dir, len(entries))
	return entries, nil
}

// Files 只返回普通文件
func (l *Lister) Files(dir string) ([]Entry, error) {
	entries, err := l.List(dir)
	if err != nil {
		return nil, err
	}

	files := entries[:0]
	for _, e := range entries {
		if e.IsRegular() {
			files = append(files, e)
		}
	}
	return files, nil
}

func (l *Lister) newEntry(dir string, info os.FileInfo) Entry {
	path := filepath.Join(dir, info.Name())
	e := Entry{
		Name:    info.Name(),
		Path:    path,
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		regular: info.Mode().IsRegular(),
	}
	if !e.IsDir {
		e.Extension = filepath.Ext(e.Name)
		e.CreatedTime = birthTime(l.fs, path, info)
	} else {
		e.Size = 0
		e.CreatedTime = e.ModTime
	}
	return e
}
