// Package cmd provides the gatehouse CLI commands.
//
// Commands:
//   - cli: Interactive terminal chat with Bubble Tea TUI
//   - ask: One-shot question, answer streamed to stdout
//   - serve: HTTP API server with SSE streaming
//   - mcp: Model Context Protocol server for external clients
//   - index: Rebuild the semantic index over the manual corpus
//   - fetch: Crawl the published manual into corpus files
//
// Signal handling and graceful shutdown are implemented for all
// long-running commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gatehouse0/gatehouse/internal/log"
)

// Execute is the main entry point for the gatehouse CLI.
func Execute() error {
	// Initialize the logger once at entry point. Stderr only: stdout
	// carries answer text in ask mode.
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(log.New(log.Config{Level: level}))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "cli":
		return runCLI()
	case "ask":
		return runAsk()
	case "serve":
		return runServe()
	case "mcp":
		return runMCP()
	case "index":
		return runIndex()
	case "fetch":
		return runFetch()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("Gatehouse - Tasmanian plant quarantine import assistant")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gatehouse cli              Start interactive chat mode")
	fmt.Println("  gatehouse ask <question>   Ask one question, stream the answer")
	fmt.Println("  gatehouse serve [addr]     Start HTTP API server (default: 127.0.0.1:3400)")
	fmt.Println("  gatehouse mcp              Start MCP server (stdio transport)")
	fmt.Println("  gatehouse index            Rebuild the semantic manual index")
	fmt.Println("  gatehouse fetch            Crawl the published manual into corpus files")
	fmt.Println("  gatehouse --version        Show version information")
	fmt.Println("  gatehouse --help           Show this help")
	fmt.Println()
	fmt.Println("CLI Commands (in interactive mode):")
	fmt.Println("  /help                      Show available commands")
	fmt.Println("  /clear                     Clear conversation history")
	fmt.Println("  /exit, /quit               Exit gatehouse")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY             Required: Gemini API key (generation)")
	fmt.Println("  OPENAI_API_KEY             Required: OpenAI API key (embeddings)")
	fmt.Println("  DEBUG                      Optional: Enable debug logging")
	fmt.Println("  GATEHOUSE_TABLES_PATH      Optional: scraped table extract merged into the host register")
	fmt.Println()
	fmt.Println("Learn more: https://github.com/gatehouse0/gatehouse")
}
