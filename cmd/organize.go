package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
)

var organizeOpts app.OrganizeOptions

var organizeCmd = &cobra.Command{
	Use:   "organize <directory>",
	Short: "整理目录中的文件",
	Long: `把目录中的文件移动到子目录，子目录本身不会被处理:
  category   按分类（Documents、Images…），完成后在同一目录去重
  extension  按扩展名移动到 <ext>_Files
  alpha      按首字母移动到 Alphabetical/<字母>
  date       按日期移动到 YYYY-MM（可用 --date-layout 修改）

同名文件不会被覆盖，而是重命名为 "name (1).ext"。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		organizeOpts.Directory = args[0]
		organizeOpts.Out = cmd.OutOrStdout()
		organizeOpts.Progress = true

		_, err := app.RunOrganize(cfg, organizeOpts)
		return err
	},
}

func init() {
	organizeCmd.Flags().StringVarP(&organizeOpts.By, "by", "b", "category", "整理方式: category, extension, alpha, date")
	organizeCmd.Flags().BoolVar(&organizeOpts.Sniff, "sniff", false, "扩展名无法识别时根据文件内容判断类型")
	organizeCmd.Flags().StringVar(&organizeOpts.DateSource, "date-source", "", "日期来源: created, modified, exif")
	organizeCmd.Flags().StringVar(&organizeOpts.DateLayout, "date-layout", "", "日期目录格式（Go 时间格式，默认 2006-01）")
	organizeCmd.Flags().StringVarP(&organizeOpts.Format, "format", "f", "text", "输出格式: text, json, markdown")

	rootCmd.AddCommand(organizeCmd)
}
