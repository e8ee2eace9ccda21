package category

import (
	"strings"

	"github.com/moyu-x/file-organizer/internal"
)

// ImagesCategory 按 EXIF 日期整理时只读取这一类文件
const ImagesCategory = "Images"

// Rule 一个分类及其包含的扩展名（带前导点，小写）
type Rule struct {
	Name       string
	Extensions []string
}

// Table 扩展名到分类名的只读映射
type Table struct {
	rules  []Rule
	lookup map[string]string
}

// DefaultRules 内置分类规则
func DefaultRules() []Rule {
	return []Rule{
		{Name: "Documents", Extensions: []string{".doc", ".docx", ".txt", ".pdf", ".rtf", ".odt"}},
		{Name: ImagesCategory, Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tiff"}},
		{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mov", ".mkv", ".webm", ".wmv"}},
		{Name: "Music", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg"}},
		{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz"}},
		{Name: "Executables", Extensions: []string{".exe", ".msi", ".bat"}},
		{Name: "Code", Extensions: []string{".c", ".cpp", ".h", ".java", ".go", ".py"}},
		{Name: "Spreadsheets", Extensions: []string{".xls", ".xlsx", ".csv"}},
	}
}

// NewTable 根据规则构建分类表
// 同一扩展名出现在多个规则中时，以先出现的规则为准
func NewTable(rules []Rule) *Table {
	t := &Table{
		rules:  make([]Rule, 0, len(rules)),
		lookup: make(map[string]string),
	}

	for _, r := range rules {
		exts := make([]string, 0, len(r.Extensions))
		for _, ext := range r.Extensions {
			ext = normalizeRule(ext)
			if ext == "" {
				continue
			}
			exts = append(exts, ext)
			if _, exists := t.lookup[ext]; !exists {
				t.lookup[ext] = r.Name
			}
		}
		t.rules = append(t.rules, Rule{Name: r.Name, Extensions: exts})
	}

	return t
}

// NewDefaultTable 使用内置规则构建分类表
func NewDefaultTable() *Table {
	return NewTable(DefaultRules())
}

// Classify 返回扩展名对应的分类，未匹配或为空时返回 "Other"
// 只做大小写折叠，不带前导点的输入不会命中任何规则
func (t *Table) Classify(ext string) string {
	if name, ok := t.lookup[strings.ToLower(ext)]; ok {
		return name
	}
	return internal.OtherCategory
}

// Rules 返回规则副本
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = Rule{Name: r.Name, Extensions: append([]string(nil), r.Extensions...)}
	}
	return out
}

// Names 按规则顺序返回所有分类名，末尾附加 Other
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.rules)+1)
	for _, r := range t.rules {
		names = append(names, r.Name)
	}
	return append(names, internal.OtherCategory)
}

// normalizeRule 规则中的扩展名统一为小写并补齐前导点
func normalizeRule(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
