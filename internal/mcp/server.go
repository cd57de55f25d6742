// Package mcp exposes the quarantine toolset over the Model Context
// Protocol so external MCP clients can query the manual without going
// through the chat agent. The three tools mirror their Genkit
// registrations exactly: same names, same input schemas, same result
// envelopes.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gatehouse0/gatehouse/internal/tools"
)

// Config holds MCP server configuration.
type Config struct {
	Name       string
	Version    string
	Logger     *slog.Logger
	Quarantine *tools.Quarantine
}

// Server wraps the MCP SDK server around the quarantine toolset.
type Server struct {
	mcpServer  *mcp.Server
	quarantine *tools.Quarantine
	logger     *slog.Logger
}

// NewServer validates the configuration and registers the quarantine
// tools.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Quarantine == nil {
		return nil, fmt.Errorf("quarantine toolset is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		quarantine: cfg.Quarantine,
		logger:     logger,
	}
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	return s, nil
}

// Run serves MCP protocol traffic on the transport until the context is
// canceled. Blocking.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

func (s *Server) registerTools() error {
	lookupSchema, err := jsonschema.For[tools.LookupInput](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", tools.ImportLookupName, err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: tools.ImportLookupName,
		Description: "Look up Tasmanian import conditions for a commodity consigned from " +
			"an Australian state or territory. Resolves the commodity against the " +
			"structured quarantine tables and falls back to semantic search over the " +
			"manual text when no verified entry exists.",
		InputSchema: lookupSchema,
	}, s.ImportLookup)

	pestSchema, err := jsonschema.For[tools.PestStatusInput](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", tools.PestStatusName, err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: tools.PestStatusName,
		Description: "Check whether a quarantine pest or disease is recorded as present " +
			"in an Australian state or territory. Accepts the Table 1 code (QFF, MFF, " +
			"GP, ...) or the common name.",
		InputSchema: pestSchema,
	}, s.PestStatus)

	searchSchema, err := jsonschema.For[tools.SearchInput](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", tools.ManualSearchName, err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: tools.ManualSearchName,
		Description: "Search the Plant Quarantine Manual text using semantic similarity. " +
			"Returns matched passages with page and section citations.",
		InputSchema: searchSchema,
	}, s.ManualSearch)

	return nil
}

// ImportLookup handles the import_lookup MCP tool call.
func (s *Server) ImportLookup(ctx context.Context, _ *mcp.CallToolRequest, input tools.LookupInput) (*mcp.CallToolResult, any, error) {
	toolCtx := &ai.ToolContext{Context: ctx}
	result, err := s.quarantine.ImportLookup(toolCtx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s failed: %w", tools.ImportLookupName, err)
	}
	return resultToMCP(result, s.logger), nil, nil
}

// PestStatus handles the pest_status MCP tool call.
func (s *Server) PestStatus(ctx context.Context, _ *mcp.CallToolRequest, input tools.PestStatusInput) (*mcp.CallToolResult, any, error) {
	toolCtx := &ai.ToolContext{Context: ctx}
	result, err := s.quarantine.PestStatus(toolCtx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s failed: %w", tools.PestStatusName, err)
	}
	return resultToMCP(result, s.logger), nil, nil
}

// ManualSearch handles the manual_search MCP tool call.
func (s *Server) ManualSearch(ctx context.Context, _ *mcp.CallToolRequest, input tools.SearchInput) (*mcp.CallToolResult, any, error) {
	toolCtx := &ai.ToolContext{Context: ctx}
	result, err := s.quarantine.SearchManual(toolCtx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("%s failed: %w", tools.ManualSearchName, err)
	}
	return resultToMCP(result, s.logger), nil, nil
}
