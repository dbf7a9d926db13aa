package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	integral "github.com/JpHernandez277/Pendientes-John"
	"github.com/JpHernandez277/Pendientes-John/internal/metrics"
)

const (
	mcpServerName    = "integral"
	mcpServerVersion = "0.1.0"
)

func newMCPCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server exposing the integration tools",
		Long: `The MCP server lets an LLM client call the integration tools.

The server can run in two modes:
- stdio: communicates via standard input/output
- http: serves the streamable HTTP transport at /mcp and Prometheus
  metrics at /metrics on --listen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch a.cfg.MCPMode {
			case "http":
				reg := prometheus.NewRegistry()
				s := newMCPServer(a.engine(), metrics.New(reg))
				err = runMCPHTTP(cmd.Context(), a.cfg.Listen, newMCPHandler(s, reg))
			default:
				// Nothing can scrape a stdio server, so calls are not counted.
				err = runMCPStdio(newMCPServer(a.engine(), nil))
			}
			if err != nil {
				return errors.WithMessage(err, "error running MCP server")
			}
			return nil
		},
	}
	cmd.Flags().String("mode", "stdio", "transport: stdio or http")
	cmd.Flags().String("listen", ":8080", "address for the http mode")
	addQuadratureFlags(cmd.Flags())
	return cmd
}

func newMCPServer(en *integral.Engine, m *metrics.Metrics) *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		log.WithField("session_id", session.SessionID()).Info("MCP client session registered")
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		log.WithField("session_id", session.SessionID()).Info("MCP client session unregistered")
	})

	s := server.NewMCPServer(
		mcpServerName,
		mcpServerVersion,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)

	exprArg := mcp.WithString("expr",
		mcp.Required(),
		mcp.Description("f(x) using x, pi, e, + - * / ** ^ and sin cos tan exp log ln sqrt abs"),
	)

	s.AddTool(mcp.NewTool("normalize",
		mcp.WithDescription("Rewrite ^ as ** and ln as log"),
		exprArg,
	), toolHandler(en, m, "normalize"))

	s.AddTool(mcp.NewTool("definite_integral",
		mcp.WithDescription(`Integrate f(x) over [a, b].

Returns value, abs_error, method, abs_area, mean_value and sign; the symbolic
method also returns the exact value. Failures carry a kind: parse, domain,
convergence or no_closed_form.`),
		exprArg,
		mcp.WithNumber("a", mcp.Required(), mcp.Description("Lower bound")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Upper bound, greater than a")),
		mcp.WithString("method",
			mcp.Description("numeric (default) or symbolic"),
			mcp.Enum("numeric", "symbolic", "scipy", "sympy"),
		),
	), toolHandler(en, m, "definite_integral"))

	s.AddTool(mcp.NewTool("indefinite_integral",
		mcp.WithDescription("Antiderivative of f(x), without the constant of integration"),
		exprArg,
		mcp.WithBoolean("verify", mcp.Description("Also return the derivative of the result")),
	), toolHandler(en, m, "indefinite_integral"))

	s.AddTool(mcp.NewTool("sample",
		mcp.WithDescription("Sample f(x) for plotting; undefined points are null"),
		exprArg,
		mcp.WithNumber("a", mcp.Description("Lower bound of the shaded region")),
		mcp.WithNumber("b", mcp.Description("Upper bound of the shaded region")),
		mcp.WithBoolean("fill", mcp.Description("Include the region between a and b")),
	), toolHandler(en, m, "sample"))

	s.AddTool(mcp.NewTool("examples",
		mcp.WithDescription("Sample integrands with their antiderivatives"),
	), toolHandler(en, m, "examples"))

	log.Debug("Registered MCP tools")
	return s
}

// toolHandler forwards an MCP call to the engine's tool dispatcher.
func toolHandler(en *integral.Engine, m *metrics.Metrics, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx.Err() != nil {
			log.WithError(ctx.Err()).WithField("tool", name).Warn("tool called with cancelled context")
			return mcp.NewToolResultError("request cancelled"), nil
		}
		if name != "examples" {
			if _, err := request.RequireString("expr"); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		resp := m.Handle(en, integral.ToolRequest{Tool: name, Params: request.GetArguments()})
		if resp.Error != "" {
			msg := resp.Error
			if resp.Kind != "" {
				msg = resp.Kind + ": " + msg
			}
			log.WithFields(log.Fields{"tool": name, "error": resp.Error}).Debug("tool call failed")
			return mcp.NewToolResultError(msg), nil
		}

		out, err := json.Marshal(resp)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s result", name)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

func runMCPStdio(s *server.MCPServer) error {
	log.WithField("mode", "stdio").Info("Initializing MCP server")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Stdio server panicked")
				errChan <- fmt.Errorf("stdio server panicked: %v", r)
			}
		}()
		errChan <- server.ServeStdio(s)
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("Received signal, shutting down stdio server")
		return nil
	}
}

// newMCPHandler serves the streamable HTTP transport at /mcp and g at
// /metrics.
func newMCPHandler(s *server.MCPServer, g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s))
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

func runMCPHTTP(ctx context.Context, addr string, h http.Handler) error {
	log.WithFields(log.Fields{"mode": "http", "listen_address": addr}).Info("Initializing MCP server")
	log.WithField("endpoint", fmt.Sprintf("http://localhost%s/mcp", addr)).Info("MCP server available")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	// No write timeout: streamable HTTP responses may stay open.
	err := serveHTTP(ctx, &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	})
	if err != nil && strings.Contains(err.Error(), "address already in use") {
		log.WithField("address", addr).Error("Port is already in use")
	}
	return err
}
