// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gridcarbon MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, client contract.IntensityClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Grid Carbon Intensity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		client:  client,
	}

	// --- 1. Tool: get_weekly_intensity ---
	s.AddTool(mcp.NewTool("get_weekly_intensity",
		mcp.WithDescription("Summarize a calendar year of GB carbon intensity into 7-day weeks with mean, min and max."),
		mcp.WithNumber("year", mcp.Description("Calendar year to summarize (defaults to the last complete year).")),
	), h.handleGetWeeklyIntensity)

	// --- 2. Tool: get_daily_intensity ---
	s.AddTool(mcp.NewTool("get_daily_intensity",
		mcp.WithDescription("List the daily carbon intensity statistics of a calendar year in date order."),
		mcp.WithNumber("year", mcp.Description("Calendar year to list (defaults to the last complete year).")),
	), h.handleGetDailyIntensity)

	// --- 3. Tool: get_current_intensity ---
	s.AddTool(mcp.NewTool("get_current_intensity",
		mcp.WithDescription("Get the national carbon intensity forecast and actual value for the current half hour."),
	), h.handleGetCurrentIntensity)

	// --- 4. Tool: get_generation_mix ---
	s.AddTool(mcp.NewTool("get_generation_mix",
		mcp.WithDescription("Get the current generation mix by fuel and its renewable share."),
	), h.handleGetGenerationMix)

	// --- 5. Tool: get_regional_intensity ---
	s.AddTool(mcp.NewTool("get_regional_intensity",
		mcp.WithDescription("Get the current intensity forecast for each region, grouped by area."),
	), h.handleGetRegionalIntensity)

	return s
}

// StartMCPServer starts the gridcarbon MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr, contract.NewHTTPIntensityClientFromConfig(baseCfg))
	return server.ServeStdio(s)
}
