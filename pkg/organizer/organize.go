package organizer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// placement 返回文件应去的目录，ok 为 false 时跳过该文件
type placement func(dir string, e scanner.Entry) (destDir string, ok bool)

// OrganizeByCategory 按分类移动文件，完成后在同一目录上去重
func (s *Session) OrganizeByCategory(dir string) (*internal.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	result, err := s.organize(dir, internal.ModeCategory, func(dir string, e scanner.Entry) (string, bool) {
		name := s.table.ClassifyFile(s.fs, e.Path, e.Extension, s.opts.SniffContent)
		return filepath.Join(dir, name), true
	})
	if err != nil {
		return nil, err
	}

	// 去重扫描的是分类之后的目录
	dupResult, err := s.finder.Consolidate(dir)
	if err != nil {
		s.log.Error().Err(err).Msgf("分类后去重失败: %s", dir)
		result.AddFailure(dir, "dedup", err)
	} else {
		result.Merge(dupResult)
	}

	result.EndTime = time.Now()
	s.logResult(result)
	return result, nil
}

// OrganizeByExtensionFolder 移动到 <ext>_Files，没有扩展名的文件不动
func (s *Session) OrganizeByExtensionFolder(dir string) (*internal.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	result, err := s.organize(dir, internal.ModeExtension, func(dir string, e scanner.Entry) (string, bool) {
		ext := strings.ToLower(strings.TrimPrefix(e.Extension, "."))
		if ext == "" {
			return "", false
		}
		return filepath.Join(dir, ext+internal.ExtensionFolderSuffix), true
	})
	if err != nil {
		return nil, err
	}
	s.logResult(result)
	return result, nil
}

// OrganizeAlphabetically 移动到 Alphabetical/<首字母>
func (s *Session) OrganizeAlphabetically(dir string) (*internal.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	result, err := s.organize(dir, internal.ModeAlphabetical, func(dir string, e scanner.Entry) (string, bool) {
		return filepath.Join(dir, internal.AlphabeticalFolder, AlphabetBucket(e.Name)), true
	})
	if err != nil {
		return nil, err
	}
	s.logResult(result)
	return result, nil
}

// OrganizeByDate 按日期目录移动，目录名由 DateLayout 决定
func (s *Session) OrganizeByDate(dir string) (*internal.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	result, err := s.organize(dir, internal.ModeDate, func(dir string, e scanner.Entry) (string, bool) {
		return filepath.Join(dir, s.fileDate(e).Format(s.opts.DateLayout)), true
	})
	if err != nil {
		return nil, err
	}
	s.logResult(result)
	return result, nil
}

// organize 只枚举一次目录，子目录跳过不递归
// 单个文件失败只记录，不中断
func (s *Session) organize(dir string, mode internal.OperationMode, place placement) (*internal.OperationResult, error) {
	result := &internal.OperationResult{
		Operation: mode,
		Directory: dir,
		StartTime: time.Now(),
	}

	files, err := s.lister.Files(dir)
	if err != nil {
		return nil, err
	}

	s.log.Info().Msgf("开始整理 (%s)，共 %d 个文件: %s", mode, len(files), dir)

	for i, file := range files {
		result.Scanned++

		destDir, ok := place(dir, file)
		if !ok {
			s.log.Debug().Msgf("跳过文件: %s", file.Path)
			result.Skipped++
		} else if _, err := s.mover.Move(file.Path, destDir, file.Name); err != nil {
			result.AddFailure(file.Path, "move", err)
		} else {
			result.Moved++
		}

		if s.progress != nil {
			s.progress(i+1, len(files), file.Path)
		}
	}

	result.EndTime = time.Now()
	return result, nil
}
