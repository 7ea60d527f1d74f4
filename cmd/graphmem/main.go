// Graphmem: Knowledge Graph Memory MCP Server
//
// A persistent memory backend for AI assistants: entities, relations,
// and observations in a local knowledge graph, exposed over the Model
// Context Protocol on stdio or WebSocket.
//
// Usage:
//
//	graphmem serve    # Start MCP server (stdio, or WebSocket via MEMORY_WS_ADDR)
//	graphmem update   # Update to the latest version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/graphmem/graphmem/internal/config"
	"github.com/graphmem/graphmem/internal/graph"
	"github.com/graphmem/graphmem/internal/logging"
	memserver "github.com/graphmem/graphmem/internal/server"
	"github.com/graphmem/graphmem/internal/updater"
	"github.com/graphmem/graphmem/internal/websocket"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("graphmem v%s\n", memserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// All logging goes to stderr — stdout belongs to the MCP protocol.
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, err := graph.New(graph.Config{Path: cfg.FilePath}, log)
	if err != nil {
		return fmt.Errorf("opening graph store: %w", err)
	}

	s := memserver.New(*cfg, store)

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	if cfg.WSAddr != "" {
		log.Info("serving over websocket",
			zap.String("address", cfg.WSAddr),
			zap.String("profile", string(cfg.Profile)),
			zap.String("snapshot", cfg.FilePath),
		)
		ws := websocket.NewServer(s, nil, log)
		return ws.Start(ctx, cfg.WSAddr)
	}

	log.Info("serving over stdio",
		zap.String("profile", string(cfg.Profile)),
		zap.String("snapshot", cfg.FilePath),
	)
	return server.ServeStdio(s, server.WithErrorLogger(zap.NewStdLog(log)))
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. This runs in a goroutine during
// "serve" and is best-effort — network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(memserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: graphmem update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(memserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(memserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart graphmem to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Graphmem v%s — Knowledge Graph Memory MCP Server

Usage:
  graphmem serve     Start the MCP server
  graphmem update    Update to the latest version
  graphmem version   Print the version

Configuration (environment variables, .env file supported):
  MEMORY_FILE_PATH   Snapshot file location (default: memory.json)
  MEMORY_WS_ADDR     Serve JSON-RPC over WebSocket on this address
                     instead of stdio (e.g. :8080)
  MEMORY_PROFILE     Tool surface: "full" or "reduced" (default: full)
  MEMORY_LOG_LEVEL   Log level for stderr logs (default: info)

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "memory": {
        "command": "graphmem",
        "args": ["serve"],
        "env": { "MEMORY_FILE_PATH": "/path/to/memory.json" }
      }
    }
  }

Learn more: https://github.com/graphmem/graphmem
`, memserver.Version)
}
