//go:build linux

package scanner

import (
	"os"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// birthTime 通过 statx 读取创建时间，文件系统不支持时退回修改时间
func birthTime(fs afero.Fs, path string, info os.FileInfo) time.Time {
	if _, ok := fs.(*afero.OsFs); !ok {
		return info.ModTime()
	}

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx); err != nil {
		return info.ModTime()
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return info.ModTime()
	}

	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
