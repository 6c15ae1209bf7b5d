package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// logLevel is shared between the initial config load and the config
// watcher so the level can change without a restart.
var logLevel = new(slog.LevelVar)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "cservice",
	Short: "Low-level tasks microservice",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file")
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
