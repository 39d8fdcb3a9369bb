package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/aresprotocol/internal/state"
)

const defaultSearchLimit = 10

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// parseFromDate reads an optional YYYY-MM-DD lower bound.
func parseFromDate(date string) (*time.Time, bool) {
	if date == "" {
		return nil, true
	}
	from, err := state.ParseDate(date)
	if err != nil {
		return nil, false
	}
	return &from, true
}

type SchemaInput struct{}

func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, SchemaInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SchemaInput) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

type SetsTimeRangeInput struct {
	FromDate     string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate       string `json:"to_date" jsonschema:"End date (YYYY-MM-DD), inclusive"`
	MuscleGroup  string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (e.g. Chest, Quads)"`
	ExerciseName string `json:"exercise_name,omitempty" jsonschema:"Filter by exercise name (e.g. Bench Press)"`
}

func (h *Handler) GetSetsForTimeRangeTool() func(context.Context, *mcp.CallToolRequest, SetsTimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SetsTimeRangeInput) (*mcp.CallToolResult, any, error) {
		from, err := state.ParseDate(in.FromDate)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := state.ParseDate(in.ToDate)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}
		to = to.Add(24*time.Hour - time.Nanosecond)

		sets, err := h.service.ListSets(ctx, from, to, in.MuscleGroup, in.ExerciseName)
		if err != nil {
			return errorResult("Error listing sets: " + err.Error()), nil, nil
		}
		return jsonResult(sets), nil, nil
	}
}

type CatalogSearchInput struct {
	Query string `json:"query" jsonschema:"Exercise name or part of it, matched fuzzily"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results, 10 when omitted"`
}

func (h *Handler) SearchCatalogTool() func(context.Context, *mcp.CallToolRequest, CatalogSearchInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CatalogSearchInput) (*mcp.CallToolResult, any, error) {
		limit := in.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}
		found, err := h.service.SearchCatalog(ctx, in.Query, limit)
		if err != nil {
			return errorResult("Error searching catalog: " + err.Error()), nil, nil
		}
		return jsonResult(found), nil, nil
	}
}

type ExerciseHistoryInput struct {
	ExerciseName string `json:"exercise_name" jsonschema:"Exercise name as logged (e.g. Bench Press)"`
	FromDate     string `json:"from_date,omitempty" jsonschema:"Optional start date (YYYY-MM-DD)"`
}

func (h *Handler) GetExerciseHistoryTool() func(context.Context, *mcp.CallToolRequest, ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseName == "" {
			return errorResult("exercise_name is required"), nil, nil
		}
		from, ok := parseFromDate(in.FromDate)
		if !ok {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		history, err := h.service.GetExerciseHistory(ctx, in.ExerciseName, from)
		if err != nil {
			return errorResult("Error fetching exercise history: " + err.Error()), nil, nil
		}
		return jsonResult(history), nil, nil
	}
}

type ExercisePercentagesInput struct {
	MuscleGroup string `json:"muscle_group" jsonschema:"Muscle group (e.g. Chest, Back)"`
	FromDate    string `json:"from_date,omitempty" jsonschema:"Optional start date (YYYY-MM-DD)"`
}

func (h *Handler) GetExercisePercentagesTool() func(context.Context, *mcp.CallToolRequest, ExercisePercentagesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExercisePercentagesInput) (*mcp.CallToolResult, any, error) {
		if in.MuscleGroup == "" {
			return errorResult("muscle_group is required"), nil, nil
		}
		from, ok := parseFromDate(in.FromDate)
		if !ok {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		percentages, err := h.service.GetExercisePercentages(ctx, in.MuscleGroup, from)
		if err != nil {
			return errorResult("Error fetching exercise percentages: " + err.Error()), nil, nil
		}
		return jsonResult(percentages), nil, nil
	}
}

type MuscleGroupPercentagesInput struct {
	FromDate string `json:"from_date,omitempty" jsonschema:"Optional start date (YYYY-MM-DD)"`
}

func (h *Handler) GetMuscleGroupPercentagesTool() func(context.Context, *mcp.CallToolRequest, MuscleGroupPercentagesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MuscleGroupPercentagesInput) (*mcp.CallToolResult, any, error) {
		from, ok := parseFromDate(in.FromDate)
		if !ok {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		percentages, err := h.service.GetMuscleGroupPercentages(ctx, from)
		if err != nil {
			return errorResult("Error fetching muscle group percentages: " + err.Error()), nil, nil
		}
		return jsonResult(percentages), nil, nil
	}
}
