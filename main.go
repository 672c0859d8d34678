package main

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/thecompernolles/citylist/internal/cities"
	"github.com/thecompernolles/citylist/internal/loader"
	"github.com/thecompernolles/citylist/internal/logging"
	"github.com/thecompernolles/citylist/internal/tui"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	flagURL     string
	flagConfig  string
	flagLogFile string
	flagTimeout time.Duration
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "citylist",
	Short: "Browse and filter the city list",
	Long: `citylist fetches the city list once at startup and lets you filter it
by city or state name as you type.

Settings are read from $XDG_CONFIG_HOME/citylist/config.toml,
$XDG_CONFIG_HOME/citylist/citylist.env, CL_* environment variables and flags,
later sources overriding earlier ones.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagURL, "url", defaultURL, "city list URL")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to a TOML config file")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "diagnostic log file, empty to disable")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "request timeout, 0 for none")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "log at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintErr("error: %v", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.logFile, cfg.debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting", zap.String("url", cfg.url.String()))

	// Create context
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Create channels
	output := make(chan tui.Msg, 1)

	// Create tea
	t := tea.NewProgram(tui.New(ctx, output), tea.WithContext(ctx), tea.WithAltScreen())

	// Create loader
	client := cities.New(cfg.url.String(), cfg.timeout, logger)
	ld := loader.New(client, logger, output)

	eg, egCtx := errgroup.WithContext(ctx)

	// Start tea
	eg.Go(func() error {
		// Quitting the view abandons the load
		defer cancel()

		_, err := t.Run()
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil
		}

		return err
	})

	// Start the one-shot load
	eg.Go(func() error {
		ld.Start(egCtx)
		return nil
	})

	err = eg.Wait()
	if err != nil {
		logger.Error("program error", zap.Error(err))
		return err
	}

	logger.Info("exited")
	return nil
}
