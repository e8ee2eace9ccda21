package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <directory>",
	Short: "统计目录中的文件数量、大小和类型",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := app.RunAnalyze(cfg, args[0], analyzeFormat, cmd.OutOrStdout())
		return err
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "输出格式: text, json, markdown")

	rootCmd.AddCommand(analyzeCmd)
}
