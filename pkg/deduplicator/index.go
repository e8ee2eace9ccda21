package deduplicator

import (
	"fmt"
	"strings"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/database"
)

// Index 摘要到文件路径的分组索引，保持插入顺序
type Index interface {
	Add(digest, filePath string) error
	Groups() ([]internal.HashGroup, error)
	Close() error
}

type IndexKind string

const (
	MemoryIndex IndexKind = "memory"
	SQLiteIndex IndexKind = "sqlite"
)

func ParseIndexKind(name string) (IndexKind, error) {
	switch IndexKind(strings.ToLower(strings.TrimSpace(name))) {
	case "", MemoryIndex:
		return MemoryIndex, nil
	case SQLiteIndex:
		return SQLiteIndex, nil
	default:
		return "", fmt.Errorf("不支持的索引类型: %s", name)
	}
}

// NewIndex 每次扫描新建一个索引，扫描结束后关闭
func NewIndex(kind IndexKind) (Index, error) {
	switch kind {
	case SQLiteIndex:
		idx, err := database.NewIndex()
		if err != nil {
			return nil, err
		}
		return idx, nil
	default:
		return newMemoryIndex(), nil
	}
}

type memoryIndex struct {
	order  []string
	groups map[string]*internal.HashGroup
}

func newMemoryIndex() *memoryIndex {
	return &memoryIndex{groups: make(map[string]*internal.HashGroup)}
}

func (m *memoryIndex) Add(digest, filePath string) error {
	g, ok := m.groups[digest]
	if !ok {
		g = &internal.HashGroup{Digest: digest}
		m.groups[digest] = g
		m.order = append(m.order, digest)
	}
	g.Members = append(g.Members, filePath)
	return nil
}

func (m *memoryIndex) Groups() ([]internal.HashGroup, error) {
	out := make([]internal.HashGroup, 0, len(m.order))
	for _, digest := range m.order {
		g := m.groups[digest]
		out = append(out, internal.HashGroup{
			Digest:  g.Digest,
			Members: append([]string(nil), g.Members...),
		})
	}
	return out, nil
}

func (m *memoryIndex) Close() error {
	m.order = nil
	m.groups = nil
	return nil
}
