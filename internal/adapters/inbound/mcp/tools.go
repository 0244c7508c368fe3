package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/artifacts"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/browser"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/history"
	"github.com/abdidvp/visualkraft/internal/application"
)

// registerTools registers all visualkraft MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, logger *zap.Logger) {
	// 1. visualkraft_run
	s.AddTool(
		mcplib.NewTool("visualkraft_run",
			mcplib.WithDescription("Run the full visual validation over the given pages and return the scored report as JSON"),
			mcplib.WithString("pages", mcplib.Description("Comma-separated page paths or URLs (default: /)")),
			mcplib.WithString("base_url", mcplib.Description("Override the configured base URL")),
		),
		handleRun(projectPath, logger),
	)

	// 2. visualkraft_quick_check
	s.AddTool(
		mcplib.NewTool("visualkraft_quick_check",
			mcplib.WithDescription("Fast single-page check: screenshot, accessibility audit, console errors and design tokens"),
			mcplib.WithString("url",
				mcplib.Required(),
				mcplib.Description("Page path or URL to check"),
			),
			mcplib.WithString("selector", mcplib.Description("CSS selector of the component to audit")),
		),
		handleQuickCheck(projectPath, logger),
	)

	// 3. visualkraft_themes
	s.AddTool(
		mcplib.NewTool("visualkraft_themes",
			mcplib.WithDescription("Apply every configured theme to one page and report which ones fail"),
			mcplib.WithString("url",
				mcplib.Required(),
				mcplib.Description("Page path or URL to sweep"),
			),
		),
		handleThemes(projectPath, logger),
	)
}

// newService loads the project config and wires a fresh browser session.
// Each tool call gets its own session so calls never share browser state.
func newService(projectPath, baseURL string, logger *zap.Logger) (*application.ValidationService, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	out := cfg.OutputDir
	if !filepath.IsAbs(out) {
		out = filepath.Join(projectPath, out)
	}
	session := browser.New(browser.ConfigFrom(cfg), logger.Named("browser"))
	return application.NewValidationService(session, artifacts.New(out), cfg, logger.Named("validation")), nil
}

func handleRun(projectPath string, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		pages := splitAndTrim(request.GetString("pages", ""))
		if len(pages) == 0 {
			pages = []string{"/"}
		}

		svc, err := newService(projectPath, request.GetString("base_url", ""), logger)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := svc.RunVisualValidation(ctx, pages)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		if hash, err := gitinfo.New().CommitHash(projectPath); err == nil {
			result.CommitHash = hash
		}
		if err := history.New().Save(projectPath, history.EntryFor(result)); err != nil {
			logger.Warn("saving run history", zap.Error(err))
		}

		return jsonResult(result)
	}
}

func handleQuickCheck(projectPath string, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc, err := newService(projectPath, "", logger)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := svc.QuickVisualCheck(ctx, url, request.GetString("selector", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("quick check failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleThemes(projectPath string, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc, err := newService(projectPath, "", logger)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.CheckThemes(ctx, url)
		if err != nil {
			return errorResult(fmt.Sprintf("theme sweep failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
