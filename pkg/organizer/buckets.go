package organizer

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/moyu-x/file-organizer/pkg/category"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

const (
	digitBucket = "0-9"
	otherBucket = "#"
)

// AlphabetBucket 取文件名首字符的大写基本字母，去掉重音（É -> E）
// 数字归入 "0-9"，其他字符归入 "#"
func AlphabetBucket(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return otherBucket
	}

	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), string(r))
	if err == nil && stripped != "" {
		r, _ = utf8.DecodeRuneInString(stripped)
	}

	switch {
	case unicode.IsDigit(r):
		return digitBucket
	case unicode.IsLetter(r):
		return string(unicode.ToUpper(r))
	default:
		return otherBucket
	}
}

// fileDate 按配置的日期来源取时间，取不到时退回修改时间
func (s *Session) fileDate(e scanner.Entry) time.Time {
	switch s.opts.DateSource {
	case DateModified:
		return e.ModTime
	case DateExif:
		if s.table.Classify(e.Extension) == category.ImagesCategory {
			if t, err := s.exifDate(e.Path); err == nil {
				return t
			}
		}
		return e.ModTime
	default:
		if e.CreatedTime.IsZero() {
			return e.ModTime
		}
		return e.CreatedTime
	}
}

func (s *Session) exifDate(path string) (time.Time, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		s.log.Debug().Err(err).Msgf("读取 EXIF 失败，使用修改时间: %s", path)
		return time.Time{}, err
	}

	return x.DateTime()
}
