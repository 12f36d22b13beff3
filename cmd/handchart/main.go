package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"handchart/internal/config"
	"handchart/internal/container"
	"handchart/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "handchart",
		Short:         "Hand-drawn line, bar and pie charts from tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRenderCmd(),
		newSamplesCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSamplesCmd() *cobra.Command {
	var csvName string

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample datasets",
		Long: `List the built-in sample datasets, or print one as CSV.

Example: handchart samples --csv monthly-sales > sales.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSamples(cmd.OutOrStdout(), csvName)
		},
	}

	cmd.Flags().StringVar(&csvName, "csv", "", "Print the named sample as CSV")
	return cmd
}

func runSamples(w io.Writer, csvName string) error {
	if csvName != "" {
		text, err := testkit.SampleCSV(csvName)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	}

	for _, s := range testkit.Catalog() {
		if _, err := fmt.Fprintf(w, "%-24s %3d rows  %s\n", s.Name, s.Rows, s.Title); err != nil {
			return err
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chart widget HTTP server",
		Long: `Start the chart widget HTTP server.

Configuration is read from the environment (and a .env file when present):
- PORT (default: 8080)
- GIN_MODE (default: debug)
- LOG_LEVEL (default: INFO)
- UPLOAD_MAX_BYTES, SESSION_TTL, SESSION_MAX, CHART_* layout settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			app, err := container.New(cfg)
			if err != nil {
				return err
			}
			defer app.Shutdown(context.Background())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}
