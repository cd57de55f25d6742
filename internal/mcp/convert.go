package mcp

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gatehouse0/gatehouse/internal/tools"
)

// detailWhitelist lists the error detail fields safe to expose to MCP
// clients. Anything else stays in the server logs.
var detailWhitelist = map[string]bool{
	"valid_states": true,
	"known_codes":  true,
	"suggestions":  true,
}

// resultToMCP translates a tool result envelope into an MCP call result.
// Business failures become IsError results so the client sees the
// structured failure; the data payload of a success is serialized as
// JSON text.
func resultToMCP(result tools.Result, logger *slog.Logger) *mcp.CallToolResult {
	if logger == nil {
		logger = slog.Default()
	}

	if result.Status == tools.StatusError {
		// Every tool fills Error on a StatusError envelope; a nil here is
		// a bug in the tool, not something the client can act on.
		if result.Error == nil {
			logger.Warn("error result carries no error payload")
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: "tool failed without details"}},
				IsError: true,
			}
		}

		text := fmt.Sprintf("[%s] %s", result.Error.Code, result.Error.Message)
		if result.Error.Details != nil {
			if safe := sanitizeDetails(result.Error.Details); len(safe) > 0 {
				detailsJSON, err := json.Marshal(safe)
				if err != nil {
					logger.Warn("marshaling error details", "error", err)
				} else {
					text += fmt.Sprintf("\nDetails: %s", detailsJSON)
				}
			}
			logger.Debug("tool error details", "details", result.Error.Details)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
			IsError: true,
		}
	}

	if result.Data == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: ""}},
		}
	}
	b, err := json.Marshal(result.Data)
	if err != nil {
		logger.Warn("marshaling tool data", "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "internal serialization error"}},
			IsError: true,
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}
}

// sanitizeDetails keeps only whitelisted detail fields.
func sanitizeDetails(details any) map[string]any {
	safe := make(map[string]any)
	m, ok := details.(map[string]any)
	if !ok {
		return safe
	}
	for k, v := range m {
		if detailWhitelist[k] {
			safe[k] = v
		}
	}
	return safe
}
