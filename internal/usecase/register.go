package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"sportsbridge/internal/domain"
)

// MCPServerAdapter is the slice of the mcp-go server this use case needs.
// Keeping it an interface avoids a hard dependency in tests.
type MCPServerAdapter interface {
	AddTool(tool mcp.Tool, handler mcpGoServer.ToolHandlerFunc)
}

// RegisterToolsUseCase validates a provider's tool spec table, stores it in
// the repository, and advertises each tool on the MCP server with a handler
// that delegates to the Dispatcher.
type RegisterToolsUseCase struct {
	repository SpecRepository
	dispatcher *Dispatcher
	normalizer Normalizer
	server     MCPServerAdapter
	logger     *slog.Logger
}

// NewRegisterToolsUseCase creates a new RegisterToolsUseCase.
func NewRegisterToolsUseCase(
	repo SpecRepository,
	dispatcher *Dispatcher,
	normalizer Normalizer,
	server MCPServerAdapter,
	logger *slog.Logger,
) *RegisterToolsUseCase {
	return &RegisterToolsUseCase{
		repository: repo,
		dispatcher: dispatcher,
		normalizer: normalizer,
		server:     server,
		logger:     logger.With("usecase", "RegisterTools"),
	}
}

// Execute registers the given specs. Duplicate names and inconsistent specs
// (placeholders without declared parameters) are programming errors; they
// abort startup rather than surfacing at invocation time.
func (uc *RegisterToolsUseCase) Execute(ctx context.Context, specs []domain.ToolSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			return fmt.Errorf("duplicate tool name: %s", spec.Name)
		}
		seen[spec.Name] = true
	}

	if err := uc.repository.Save(ctx, specs); err != nil {
		return fmt.Errorf("failed to save tool specs: %w", err)
	}

	for _, spec := range specs {
		uc.server.AddTool(toMCPTool(spec), uc.handler(spec.Name))
	}
	uc.logger.Info("Registered tools", slog.Int("count", len(specs)))
	return nil
}

// handler bridges one advertised tool to the dispatch pipeline. Dispatch
// errors come back as tool-level error results, never as protocol errors.
func (uc *RegisterToolsUseCase) handler(name string) mcpGoServer.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := uc.dispatcher.Dispatch(ctx, name, request.GetArguments())
		if result.Status == domain.StatusError {
			return mcp.NewToolResultError(result.ErrorDetail), nil
		}
		text, truncated := uc.normalizer.Render(result.Payload)
		if truncated {
			uc.logger.Debug("Rendered payload was truncated", slog.String("tool_name", name))
		}
		return mcp.NewToolResultText(text), nil
	}
}

// toMCPTool converts a ToolSpec into its MCP advertisement.
func toMCPTool(spec domain.ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Description)}
	for _, p := range spec.Params {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if p.Type == domain.ParamInteger {
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		} else {
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}
