// Command querycloud is the terminal front-end for Query Cloud: ask
// questions, browse answers and reply anonymously. The question list
// refreshes whenever the server reports a change.
//
// Logs go to --log-file (or QC_LOG_FILE); without one they are discarded
// because the terminal belongs to the UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/querycloud/internal/app"
	"github.com/heartmarshall/querycloud/internal/client"
	"github.com/heartmarshall/querycloud/internal/config"
	"github.com/heartmarshall/querycloud/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiURL, logFile string

	cmd := &cobra.Command{
		Use:           "querycloud",
		Short:         "Anonymous questions and answers in your terminal",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api") {
				cfg.APIURL = apiURL
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "", "server base URL (default $QC_API_URL or http://localhost:8080)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file (default $QC_LOG_FILE)")
	return cmd
}

func run(ctx context.Context, cfg *config.ClientConfig) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("querycloud needs an interactive terminal")
	}

	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := app.NewLoggerTo(out, cfg.Log)

	backend, err := client.New(*cfg, logger)
	if err != nil {
		return err
	}

	ui := tui.NewApp(ctx, backend, logger)
	ui.List().SetResubscribeDelay(cfg.ReconnectDelay)
	defer ui.Close()

	logger.Info("starting", slog.String("api", cfg.APIURL))
	if _, err := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
