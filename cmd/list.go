package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
)

var listOpts app.ListOptions

var listCmd = &cobra.Command{
	Use:   "list <directory>",
	Short: "列出目录的直接子项",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listOpts.Directory = args[0]
		listOpts.Out = cmd.OutOrStdout()
		return app.RunList(cfg, listOpts)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOpts.Category, "category", "c", "", "只列出指定分类的文件，例如 Documents、Images、Other")
	listCmd.Flags().StringVarP(&listOpts.Sort, "sort", "s", "name", "排序: name, date, size，加前缀 - 表示降序")
	listCmd.Flags().BoolVar(&listOpts.Sniff, "sniff", false, "扩展名无法识别时按文件内容判断分类")
	listCmd.Flags().StringVarP(&listOpts.Format, "format", "f", "text", "输出格式: text, json, markdown")

	rootCmd.AddCommand(listCmd)
}
