package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mcptoolkit/internal/metadata"
	"mcptoolkit/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   metadata.Name,
	Short: "mcptoolkit - Day-to-day efficiency tools served over MCP",
	Long:  `An MCP server exposing file, shell, system, time, and text utility tools, prompt templates, and project resources to AI assistant clients.`,
}

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long:  "Start the MCP server on the selected transport: stdio (default) or http.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env if present; fall back to the process environment.
			_ = godotenv.Load()

			transport, _ := cmd.Flags().GetString("transport")
			listen, _ := cmd.Flags().GetString("listen")

			// stdout carries the stdio protocol stream, so logs go to stderr.
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			srv, err := server.New(logger)
			if err != nil {
				return fmt.Errorf("building server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			switch transport {
			case "stdio":
				return srv.RunStdio(ctx)
			case "http":
				return srv.RunHTTP(ctx, listen)
			default:
				return fmt.Errorf("unsupported transport: %s (expected stdio or http)", transport)
			}
		},
	}
	cmd.Flags().String("transport", "stdio", "Transport to serve on: stdio or http")
	cmd.Flags().String("listen", ":8321", "Listen address for the http transport")
	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", metadata.Name, metadata.Version)
		},
	}
}

func init() {
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewVersionCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
