package cmd

import (
	"fmt"
	"os"

	"cdnctl/internal/config"
	"cdnctl/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cdnctl",
	Short: "cdnctl - A command line interface for CDN distributions",
	Long: `cdnctl lists, filters, sorts and pages CDN distributions from the
distributions API or from an in-memory demo collection, and can serve that
collection over the same API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		s := config.Load()
		logging.Configure(s.LogLevel, s.LogFormat)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(config.InitConfig)
}
