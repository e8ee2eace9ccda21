package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/app"
	"github.com/moyu-x/file-organizer/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [directory]",
	Short: "启动交互界面，可以连续整理并逐步撤销",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := app.SessionOptions(cfg)
		if err != nil {
			return err
		}

		dir := ""
		if len(args) > 0 {
			dir = args[0]
		}
		return tui.Run(app.NewSession(opts), dir)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
