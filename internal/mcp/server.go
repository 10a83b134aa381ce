package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/readwise-community/readwise-mcp/internal/config"
	"github.com/readwise-community/readwise-mcp/internal/readwise"
)

const serverInstructions = `Readwise stores highlights: excerpted passages plus their source ` +
	`metadata and optional notes. Use create_highlight to save a single passage, ` +
	`create_highlights to save several in one call, and get_highlights to fetch ` +
	`recent highlights. A note starting with ".word" attaches the inline tag "word".`

// Server binds the Readwise client to the MCP protocol. Tool dispatch
// is stateless: every invocation decodes its arguments, calls the
// client, and folds success or failure into a tool result. Failures
// never escape to the transport as protocol errors.
type Server struct {
	cfg    config.Config
	client *readwise.Client
	logger *log.Logger
	mcp    *server.MCPServer
}

func NewServer(cfg config.Config, client *readwise.Client, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{cfg: cfg, client: client, logger: logger}

	m := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)
	m.AddTool(createHighlightTool(), s.handle("create_highlight"))
	m.AddTool(createHighlightsTool(), s.handle("create_highlights"))
	m.AddTool(getHighlightsTool(), s.handle("get_highlights"))

	s.mcp = m
	return s
}

// Run serves the MCP protocol over stdin/stdout until ctx is cancelled
// or stdin closes. Diagnostics go to the server logger, never stdout.
func (s *Server) Run(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.logger)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// RunHTTP serves the streamable HTTP transport on addr at path.
func (s *Server) RunHTTP(ctx context.Context, addr, path string) error {
	httpServer := server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(path))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handle(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result := s.Invoke(ctx, name, req.GetArguments())
		s.logger.Printf("tool=%s duration_ms=%d is_error=%t", name, time.Since(start).Milliseconds(), result.IsError)
		return result, nil
	}
}

// Invoke dispatches a tool call by name. It always returns a result:
// client failures, malformed arguments, and unknown names all come
// back as error-flagged results rather than Go errors.
func (s *Server) Invoke(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	result, err := s.execute(ctx, name, args)
	if err != nil {
		return mcp.NewToolResultError("Error: " + err.Error())
	}
	return mcp.NewToolResultText(mustJSON(result))
}

func (s *Server) execute(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "create_highlight":
		var h readwise.Highlight
		if err := decodeArgs(args, &h); err != nil {
			return nil, err
		}
		return s.client.CreateHighlight(ctx, h)

	case "create_highlights":
		raw, ok := args["highlights"]
		if !ok {
			return nil, errors.New("highlights is required")
		}
		var hs []readwise.Highlight
		if err := decodeArgs(raw, &hs); err != nil {
			return nil, err
		}
		return s.client.CreateHighlights(ctx, hs)

	case "get_highlights":
		return s.client.ListHighlights(ctx)

	default:
		return nil, fmt.Errorf("Unknown tool: %s", name)
	}
}

// decodeArgs round-trips a loosely-typed argument bag through JSON
// into a typed value, failing closed on shape mismatch.
func decodeArgs(v any, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	return nil
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
