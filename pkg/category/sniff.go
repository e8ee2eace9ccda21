package category

import (
	"fmt"
	"io"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
)

// SniffExtension 读取文件头部并使用 filetype 库推断扩展名
// 无法识别时返回空字符串
func SniffExtension(fs afero.Fs, filePath string) (string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	head := make([]byte, internal.FileHeaderSize)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("读取文件头部失败: %w", err)
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return "", fmt.Errorf("检测文件类型失败: %w", err)
	}

	if kind == filetype.Unknown {
		return "", nil
	}

	return "." + kind.Extension, nil
}

// ClassifyFile 先按扩展名分类；结果为 Other 且 sniff 为真时再按内容识别
func (t *Table) ClassifyFile(fs afero.Fs, filePath, ext string, sniff bool) string {
	name := t.Classify(ext)
	if name != internal.OtherCategory || !sniff {
		return name
	}

	sniffed, err := SniffExtension(fs, filePath)
	if err != nil || sniffed == "" {
		return name
	}

	return t.Classify(sniffed)
}
