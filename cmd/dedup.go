package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
)

var dedupOpts app.DedupOptions

var dedupCmd = &cobra.Command{
	Use:   "dedup <directory>",
	Short: "检测重复文件并移到 Duplicates 目录",
	Long: `计算目录中每个文件的内容哈希，内容相同的文件中保留第一个，
其余移动到 Duplicates 子目录。只处理目录的直接子文件。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dedupOpts.Directory = args[0]
		dedupOpts.Out = cmd.OutOrStdout()
		dedupOpts.Progress = true

		_, err := app.RunDedup(cfg, dedupOpts)
		return err
	},
}

func init() {
	dedupCmd.Flags().StringVarP(&dedupOpts.Algorithm, "algorithm", "a", "", "哈希算法: sha256, blake2b, xxhash")
	dedupCmd.Flags().StringVar(&dedupOpts.Index, "index", "", "摘要索引: memory, sqlite")
	dedupCmd.Flags().StringVar(&dedupOpts.Folder, "folder", "", "重复文件目录名（默认 Duplicates）")
	dedupCmd.Flags().BoolVar(&dedupOpts.DryRun, "dry-run", false, "预览模式，不实际移动文件")
	dedupCmd.Flags().StringVarP(&dedupOpts.Format, "format", "f", "text", "输出格式: text, json, markdown")

	rootCmd.AddCommand(dedupCmd)
}
