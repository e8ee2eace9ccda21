package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/moyu-x/file-organizer/internal"
)

type Config struct {
	Logging struct {
		Level string
		File  string
	}
	Undo struct {
		Capacity int
	}
	Hash struct {
		Algorithm string
	}
	Dedup struct {
		Index  string
		Folder string
	}
	Organize struct {
		SniffContent bool `mapstructure:"sniff_content"`
	}
	Date struct {
		Source string
		Layout string
	}
}

var cfg Config

// SearchPaths 配置文件的查找目录，按优先级排列
func SearchPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, internal.AppName),
		".",
		filepath.Join("/etc", internal.AppName),
	}
}

// Load 读取配置；configFile 为空时在 SearchPaths 中查找 config.yaml
// 找不到配置文件时使用默认值
// 环境变量 FILE_ORGANIZER_<SECTION>_<KEY> 可覆盖配置文件
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range SearchPaths() {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix("FILE_ORGANIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("undo.capacity", internal.DefaultUndoCapacity)
	v.SetDefault("hash.algorithm", "sha256")
	v.SetDefault("dedup.index", "memory")
	v.SetDefault("dedup.folder", internal.DefaultDuplicatesFolder)
	v.SetDefault("organize.sniff_content", false)
	v.SetDefault("date.source", "created")
	v.SetDefault("date.layout", internal.DefaultDateLayout)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, err
	}

	cfg = loaded
	return &cfg, nil
}

func Get() *Config {
	return &cfg
}
