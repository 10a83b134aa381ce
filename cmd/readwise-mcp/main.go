package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/readwise-community/readwise-mcp/internal/config"
	"github.com/readwise-community/readwise-mcp/internal/mcp"
	"github.com/readwise-community/readwise-mcp/internal/readwise"
)

// Set via ldflags at build time.
var version = "0.1.0"

var (
	flagTransport string
	flagHTTPAddr  string
	flagHTTPPath  string
)

var rootCmd = &cobra.Command{
	Use:   "readwise-mcp [token]",
	Short: "MCP server for Readwise highlights",
	Long: "readwise-mcp exposes the Readwise highlights API as MCP tools.\n" +
		"The API token is taken from the first argument, the " + config.EnvToken + "\n" +
		"environment variable, or a .env file in the working directory.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagTransport, "transport", "stdio", "transport to serve: stdio or http")
	rootCmd.Flags().StringVar(&flagHTTPAddr, "http-addr", ":8080", "listen address for the http transport")
	rootCmd.Flags().StringVar(&flagHTTPPath, "http-path", "/mcp", "endpoint path for the http transport")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("readwise-mcp version %s\n", version))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// stdout carries the MCP stream; all diagnostics go to stderr.
	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := readwise.NewClient(cfg, logger)
	server := mcp.NewServer(cfg, client, logger)

	switch flagTransport {
	case "http", "streamable-http":
		logger.Printf("starting MCP HTTP transport on %s%s", flagHTTPAddr, flagHTTPPath)
		return server.RunHTTP(ctx, flagHTTPAddr, flagHTTPPath)
	case "stdio":
		logger.Printf("starting MCP stdio transport")
		return server.Run(ctx)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", flagTransport)
	}
}
