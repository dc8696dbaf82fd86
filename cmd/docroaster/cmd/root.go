package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docroaster",
	Short: "Doc.Roaster web console",
	Long: `The Doc.Roaster web console: login, document dashboard, and admin
screens for the Doc.Roaster document-analysis API.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
