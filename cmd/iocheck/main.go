package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vertti/iocheck/pkg/config"
	"github.com/vertti/iocheck/pkg/output"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configFile string
	debug      bool
	timeout    time.Duration
	noSensors  bool
)

var rootCmd = &cobra.Command{
	Use:   "iocheck [gpio|pwm|i2c|spi|serial]...",
	Short: "Diagnose the hardware interfaces of a single-board computer",
	Long: `iocheck inspects the GPIO, PWM, I2C, SPI and serial interfaces of a
Linux single-board computer and prints one report per interface.

With no arguments every interface is checked. Unknown names are ignored.

Examples:
  iocheck
  iocheck i2c spi
  iocheck --config iocheck.yaml --debug serial`,
	Version:      Version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
	RunE: runChecks,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout for each external tool (default 30s)")
	rootCmd.Flags().BoolVar(&noSensors, "no-sensors", false, "skip I2C sensor detection")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// runChecks prints the report of every selected interface. Failed checks are
// part of the report, so the command only errors on a bad configuration.
func runChecks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if timeout < 0 {
		return fmt.Errorf("--timeout must not be negative, got %s", timeout)
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if noSensors {
		disabled := false
		cfg.Sensors = &disabled
	}

	checkers := buildCheckers(cfg, newEnvironment(cfg))
	w := cmd.OutOrStdout()
	for _, iface := range selectInterfaces(args) {
		output.PrintResult(w, checkers[iface].Detect(cmd.Context()))
		fmt.Fprintln(w)
	}
	return nil
}
