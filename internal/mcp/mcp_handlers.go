package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/gridcarbon/core"
	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	client  contract.IntensityClient
}

// configForYear clones the base config, overriding the year when one is given.
func (h *toolHandler) configForYear(request mcp.CallToolRequest) (*contract.Config, error) {
	year := request.GetInt("year", 0)
	if year == 0 {
		return h.baseCfg.Clone(), nil
	}
	if year < contract.MinYear || year > contract.MaxYear {
		return nil, fmt.Errorf("year must be between %d and %d (received %d)", contract.MinYear, contract.MaxYear, year)
	}
	return h.baseCfg.CloneWithYear(year), nil
}

func (h *toolHandler) handleGetWeeklyIntensity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForYear(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, _, err := core.GetWeeklyResults(core.WithSuppressHeader(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}

	payload := struct {
		Year    int                            `json:"year"`
		Weeks   []schema.EnrichedWeeklySummary `json:"weeks"`
		Summary schema.YearSummary             `json:"summary"`
	}{
		Year:    result.Year,
		Weeks:   schema.EnrichWeeks(result.Weeks),
		Summary: result.Summary,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDailyIntensity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForYear(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, _, err := core.GetDailyResults(core.WithSuppressHeader(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	enriched := schema.EnrichDays(result.Days, cfg.Bands)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCurrentIntensity(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current, err := h.client.GetCurrent(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(current, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGenerationMix(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.client.GetGeneration(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	result.Mix = schema.SortMix(result.Mix)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRegionalIntensity(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := core.GetRegionalResults(ctx, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(groups, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
