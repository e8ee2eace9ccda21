package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// Index 基于内存 SQLite 的摘要索引，仅在一次去重扫描期间存在
type Index struct {
	conn *sql.DB
}

// NewIndex 创建一个内存数据库，关闭后数据即丢弃
func NewIndex() (*Index, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	// 每个连接都是独立的内存库，必须固定为单连接
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS file_hashes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hash TEXT NOT NULL,
		file_path TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_hash ON file_hashes(hash);
	`

	if _, err := conn.Exec(createTableSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建表失败: %w", err)
	}

	logger.Get().Debug().Msg("内存摘要索引已创建")
	return &Index{conn: conn}, nil
}

// Add 按插入顺序记录一个文件的摘要
func (i *Index) Add(digest, filePath string) error {
	_, err := i.conn.Exec(
		"INSERT INTO file_hashes (hash, file_path) VALUES (?, ?)",
		digest, filePath,
	)
	if err != nil {
		return fmt.Errorf("插入哈希记录失败: %w", err)
	}
	return nil
}

// Groups 按摘要分组，组的顺序和组内成员顺序都与插入顺序一致
func (i *Index) Groups() ([]internal.HashGroup, error) {
	rows, err := i.conn.Query(`
	SELECT hash, file_path FROM file_hashes AS f
	ORDER BY (SELECT MIN(g.id) FROM file_hashes AS g WHERE g.hash = f.hash), f.id`)
	if err != nil {
		return nil, fmt.Errorf("查询数据库失败: %w", err)
	}
	defer rows.Close()

	var groups []internal.HashGroup
	for rows.Next() {
		var hash, path string
		if err := rows.Scan(&hash, &path); err != nil {
			return nil, fmt.Errorf("读取行数据失败: %w", err)
		}

		n := len(groups)
		if n > 0 && groups[n-1].Digest == hash {
			groups[n-1].Members = append(groups[n-1].Members, path)
			continue
		}
		groups = append(groups, internal.HashGroup{Digest: hash, Members: []string{path}})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历结果集失败: %w", err)
	}

	return groups, nil
}

// Close 关闭数据库连接，内存数据随之释放
func (i *Index) Close() error {
	return i.conn.Close()
}
