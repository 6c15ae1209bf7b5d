package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vots/cservice/internal/config"
	"github.com/vots/cservice/internal/probe"
)

var checkCmd = &cobra.Command{
	Use:   "check [addr]",
	Short: "Probe a running instance's health endpoint",
	Long:  "Send a GET to /health on the configured (or given) address and report the result. Exits non-zero if the instance is unreachable or unhealthy.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

var checkTimeout time.Duration

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Second, "Probe timeout")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr := cfg.ListenAddr
	if len(args) > 0 {
		addr = args[0]
	}

	res := probe.Check(context.Background(), probe.Config{
		Addr:     addr,
		Path:     "/health",
		WantBody: "OK",
		Timeout:  checkTimeout,
	})
	if res.Status != probe.StatusHealthy {
		// Distinguish "wrong answer" from "nothing there at all".
		if err := probe.CheckTCP(context.Background(), probe.Config{Addr: addr, Timeout: checkTimeout}); err != nil {
			return fmt.Errorf("FAIL %s: %s (%v)", addr, res.Message, err)
		}
		return fmt.Errorf("FAIL %s: %s", addr, res.Message)
	}

	fmt.Printf("OK    %s\n", addr)
	return nil
}
