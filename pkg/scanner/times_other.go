//go:build !linux

package scanner

import (
	"os"
	"time"

	"github.com/spf13/afero"
)

func birthTime(_ afero.Fs, _ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
