package cmd

import (
	"fmt"

	"cdnctl/internal/config"
	"cdnctl/internal/datasource"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure cdnctl settings",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Set the API key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.SetAPIKey(args[0]); err != nil {
			fmt.Printf("Error setting API key: %v\n", err)
			return
		}
		fmt.Println("API key set successfully.")
	},
}

var getKeyCmd = &cobra.Command{
	Use:   "get-key",
	Short: "Get the current API key",
	Run: func(cmd *cobra.Command, args []string) {
		key := config.GetAPIKey()
		if key == "" {
			fmt.Println("API key is not set.")
		} else {
			fmt.Printf("Current API key: %s\n", key)
		}
	},
}

var setURLCmd = &cobra.Command{
	Use:   "set-url [url]",
	Short: "Set the base URL of the distributions API",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Set(config.APIURL, args[0]); err != nil {
			fmt.Printf("Error setting API URL: %v\n", err)
			return
		}
		fmt.Println("API URL set successfully.")
	},
}

var getURLCmd = &cobra.Command{
	Use:   "get-url",
	Short: "Get the base URL of the distributions API",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Current API URL: %s\n", config.Load().APIURL)
	},
}

var setBackendCmd = &cobra.Command{
	Use:   "set-backend [remote|memory]",
	Short: "Set the default data backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := datasource.ParseKind(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := config.Set(config.Backend, string(kind)); err != nil {
			fmt.Printf("Error setting backend: %v\n", err)
			return
		}
		fmt.Printf("Backend set to %s.\n", kind)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(getKeyCmd)
	configCmd.AddCommand(setURLCmd)
	configCmd.AddCommand(getURLCmd)
	configCmd.AddCommand(setBackendCmd)
}
