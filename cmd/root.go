package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/user/gifdeck/internal/config"
	"github.com/user/gifdeck/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "gifdeck",
	Short: "GIF picker for the terminal",
	Long:  "Search GIFs, save favorites, and copy them to the clipboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return tui.Run(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default: ~/.gifdeck)")
	cobra.OnInitialize(func() {
		if dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir"); dataDir != "" {
			viper.Set("data_dir", dataDir)
		}
	})
}
