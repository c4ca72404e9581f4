package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "blockfs"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - a single-volume, FAT-chained file system over a block device",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(DefineFormatCommand())
	rootCmd.AddCommand(DefineShellCommand())
	rootCmd.AddCommand(DefineFuseMountCommand())

	return rootCmd.Execute()
}
