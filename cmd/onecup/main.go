// Package main provides the onecup command: the reading API server and the
// article alignment inspector.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/highshore/one-cup-eng-sub002/config"
)

// version is set at build time.
var version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "onecup",
		Short:   "One Cup English reading service",
		Version: version,
		// Usage is noise for runtime failures such as an unreachable store.
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (env: ONECUP_*)")

	load := func() (*config.Config, error) {
		return config.Load(configPath)
	}
	rootCmd.AddCommand(newServeCmd(load), newInspectCmd(load))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
