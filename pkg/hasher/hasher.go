package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
)

// Algorithm 内容摘要算法
type Algorithm string

const (
	SHA256  Algorithm = "sha256"
	BLAKE2b Algorithm = "blake2b"
	// XXHash 速度最快，但只有 64 位，仅在明确指定时使用
	XXHash Algorithm = "xxhash"
)

// ParseAlgorithm 解析算法名称，空字符串返回默认的 sha256
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", SHA256:
		return SHA256, nil
	case BLAKE2b:
		return BLAKE2b, nil
	case XXHash:
		return XXHash, nil
	default:
		return "", fmt.Errorf("不支持的哈希算法: %s", name)
	}
}

// DigestLength 返回算法输出的十六进制字符数
func (a Algorithm) DigestLength() int {
	switch a {
	case XXHash:
		return 16
	default:
		return 64
	}
}

type Hasher struct {
	fs         afero.Fs
	algorithm  Algorithm
	bufferSize int
}

func New(fs afero.Fs, algorithm Algorithm) *Hasher {
	if algorithm == "" {
		algorithm = SHA256
	}
	return &Hasher{
		fs:         fs,
		algorithm:  algorithm,
		bufferSize: internal.DefaultBufferSize,
	}
}

func (h *Hasher) Algorithm() Algorithm {
	return h.algorithm
}

func (h *Hasher) newHash() (hash.Hash, error) {
	switch h.algorithm {
	case BLAKE2b:
		return blake2b.New256(nil)
	case XXHash:
		return xxhash.New(), nil
	default:
		return sha256.New(), nil
	}
}

// Sum 以固定大小的缓冲区分块读取文件并计算摘要
func (h *Hasher) Sum(filePath string) (string, error) {
	logger.Get().Trace().Msgf("计算文件哈希: %s", filePath)

	file, err := h.fs.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: 打开文件失败: %w", internal.ErrIO, err)
	}
	defer file.Close()

	digest, err := h.newHash()
	if err != nil {
		return "", fmt.Errorf("创建哈希对象失败: %w", err)
	}

	buf := make([]byte, h.bufferSize)
	if _, err := io.CopyBuffer(digest, file, buf); err != nil {
		return "", fmt.Errorf("%w: 计算哈希失败: %w", internal.ErrIO, err)
	}

	result := hex.EncodeToString(digest.Sum(nil))
	logger.Get().Trace().Msgf("文件哈希计算完成: %s -> %s", filePath, result)
	return result, nil
}
