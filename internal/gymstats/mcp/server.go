package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing one user's training context:
// schema, logged sets, catalog search, exercise history and training mix.
func NewServer(svc contextService) *mcp.Server {
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "ares-training-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_ares_schema",
		Description: "Returns the DB schema of the training tables (exercise_log, gymstats_event, user_state): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_sets_for_time_range",
		Description: "Returns the sets logged within the given date range. Optional filters: muscle_group, exercise_name.",
	}, h.GetSetsForTimeRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_exercise_catalog",
		Description: "Fuzzy searches the exercise directory and the user's custom exercises by name. Returns primary muscle, category and demo media.",
	}, h.SearchCatalogTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_history",
		Description: "Returns per-day stats (avg kilos, avg reps, sets, volume, estimated 1RM) for one exercise. Use to see progression over time.",
	}, h.GetExerciseHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_percentages",
		Description: "Returns the share of sets each exercise took within a muscle group.",
	}, h.GetExercisePercentagesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_muscle_group_percentages",
		Description: "Returns the share of sets per muscle group. Use to check training balance.",
	}, h.GetMuscleGroupPercentagesTool())

	return s
}
