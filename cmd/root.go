package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
	"github.com/moyu-x/file-organizer/config"
)

var (
	globalOpts app.GlobalOptions
	cfg        *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "file-organizer",
	Short: "按分类、扩展名、首字母或日期整理目录中的文件",
	Long: `File Organizer 扫描单个目录（不递归），把其中的文件移动到子目录中。

主要功能:
- 按分类整理（文档、图片、视频、音乐等），完成后自动去重
- 按扩展名、首字母或日期整理
- 基于内容哈希检测重复文件并移到 Duplicates 目录
- 目录分析：文件数、总大小、各扩展名统计
- 交互界面中可以逐步撤销最近的移动`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := app.Setup(globalOpts)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigFile, "config", "", "配置文件路径（默认在 $XDG_CONFIG_HOME/file-organizer、当前目录、/etc/file-organizer 中查找 config.yaml）")
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogLevel, "log-level", "", "日志级别: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogFile, "log-file", "", "日志文件路径")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "显示详细日志")
}
