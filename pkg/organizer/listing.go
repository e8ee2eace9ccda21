package organizer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// SortKey 目录列表的排序字段
type SortKey string

const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortBySize SortKey = "size"
)

// ListQuery 列表过滤和排序条件，零值等同于 ListEntries
type ListQuery struct {
	Category   string
	SortBy     SortKey
	Descending bool
}

// ParseSort 解析 name、date、size，前缀 "-" 表示降序
func ParseSort(value string) (SortKey, bool, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	desc := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	switch SortKey(value) {
	case "", SortByName:
		return SortByName, desc, nil
	case SortByDate, "modified":
		return SortByDate, desc, nil
	case SortBySize:
		return SortBySize, desc, nil
	default:
		return "", false, fmt.Errorf("不支持的排序字段: %s", value)
	}
}

// QueryEntries 列出 dir 的直接子项，可按分类过滤
// 指定分类时只保留普通文件，未命中任何规则的文件属于 Other
func (s *Session) QueryEntries(dir string, q ListQuery) ([]scanner.Entry, error) {
	entries, err := s.lister.List(dir)
	if err != nil {
		return nil, err
	}

	if q.Category != "" {
		name, err := s.categoryName(q.Category)
		if err != nil {
			return nil, err
		}

		filtered := entries[:0]
		for _, e := range entries {
			if e.IsRegular() && s.table.ClassifyFile(s.fs, e.Path, e.Extension, s.opts.SniffContent) == name {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	slices.SortStableFunc(entries, func(a, b scanner.Entry) int {
		var c int
		switch q.SortBy {
		case SortByDate:
			c = a.ModTime.Compare(b.ModTime)
		case SortBySize:
			c = cmp.Compare(a.Size, b.Size)
		}
		if c == 0 {
			c = strings.Compare(a.Name, b.Name)
		}
		if q.Descending {
			return -c
		}
		return c
	})

	s.log.Debug().
		Str("category", q.Category).
		Str("sort", string(q.SortBy)).
		Bool("desc", q.Descending).
		Msgf("目录 %s 过滤后共 %d 项", dir, len(entries))
	return entries, nil
}

// categoryName 不区分大小写地匹配分类名，"Others" 视为 Other
func (s *Session) categoryName(name string) (string, error) {
	if strings.EqualFold(name, "others") {
		return internal.OtherCategory, nil
	}
	for _, known := range s.table.Names() {
		if strings.EqualFold(known, name) {
			return known, nil
		}
	}
	return "", fmt.Errorf("未知分类: %s", name)
}
