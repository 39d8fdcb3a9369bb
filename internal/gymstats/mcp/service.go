package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/gymstats/exercises"
	"github.com/2beens/aresprotocol/internal/state"
)

var ErrNoUser = errors.New("no user selected")

type setsRepo interface {
	ListAll(ctx context.Context, params exercises.SetParams) ([]exercises.Set, error)
}

type exerciseAnalyzer interface {
	ExerciseHistory(ctx context.Context, params exercises.SetParams, timezone string) (*exercises.ExerciseHistory, error)
	ExercisePercentages(ctx context.Context, userID, muscleGroup string, from *time.Time) (map[string]exercises.ExercisePercentageInfo, error)
	MuscleGroupPercentages(ctx context.Context, userID string, from *time.Time) (map[string]float64, error)
}

type exerciseCatalog interface {
	Search(query string, userExercises []state.ExerciseMetadata, limit int) []state.ExerciseMetadata
}

type stateLoader interface {
	Load(ctx context.Context, userID string) (*state.AppState, error)
}

// contextService is what the tool handlers read from; every call is scoped
// to the user the server was started for.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ListSets(ctx context.Context, from, to time.Time, muscleGroup, exerciseName string) ([]exercises.Set, error)
	SearchCatalog(ctx context.Context, query string, limit int) ([]state.ExerciseMetadata, error)
	GetExerciseHistory(ctx context.Context, exerciseName string, from *time.Time) (*exercises.ExerciseHistory, error)
	GetExercisePercentages(ctx context.Context, muscleGroup string, from *time.Time) (map[string]exercises.ExercisePercentageInfo, error)
	GetMuscleGroupPercentages(ctx context.Context, from *time.Time) (map[string]float64, error)
}

type ContextService struct {
	userID   string
	schema   SchemaRepo
	sets     setsRepo
	analyzer exerciseAnalyzer
	catalog  exerciseCatalog
	states   stateLoader
}

func NewContextService(
	userID string,
	schemaRepo SchemaRepo,
	sets setsRepo,
	analyzer exerciseAnalyzer,
	catalog exerciseCatalog,
	states stateLoader,
) *ContextService {
	return &ContextService{
		userID:   userID,
		schema:   schemaRepo,
		sets:     sets,
		analyzer: analyzer,
		catalog:  catalog,
		states:   states,
	}
}

// GetSchema returns the columns of the training tables as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetTrainingColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# ARES DB Schema\n\nNo training tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tables := make([]string, 0, len(byTable))
	for t := range byTable {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var b strings.Builder
	b.WriteString("# ARES DB Schema\n\n")
	b.WriteString("Tables: ")
	b.WriteString(strings.Join(tables, ", "))
	b.WriteString(" (schema: public). user_state.payload is encrypted.\n\n")

	for _, table := range tables {
		b.WriteString("## ")
		b.WriteString(table)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[table] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) ListSets(ctx context.Context, from, to time.Time, muscleGroup, exerciseName string) ([]exercises.Set, error) {
	if s.userID == "" {
		return nil, ErrNoUser
	}
	return s.sets.ListAll(ctx, exercises.SetParams{
		UserID:       s.userID,
		ExerciseName: exerciseName,
		MuscleGroup:  muscleGroup,
		From:         &from,
		To:           &to,
	})
}

// SearchCatalog searches the directory together with the user's custom exercises.
func (s *ContextService) SearchCatalog(ctx context.Context, query string, limit int) ([]state.ExerciseMetadata, error) {
	var custom []state.ExerciseMetadata
	if appState := s.loadState(ctx); appState != nil {
		custom = appState.UserExercises
	}
	return s.catalog.Search(query, custom, limit), nil
}

func (s *ContextService) GetExerciseHistory(ctx context.Context, exerciseName string, from *time.Time) (*exercises.ExerciseHistory, error) {
	if s.userID == "" {
		return nil, ErrNoUser
	}
	timezone := ""
	if appState := s.loadState(ctx); appState != nil {
		timezone = appState.Timezone()
	}
	return s.analyzer.ExerciseHistory(ctx, exercises.SetParams{
		UserID:       s.userID,
		ExerciseName: exerciseName,
		From:         from,
	}, timezone)
}

func (s *ContextService) GetExercisePercentages(ctx context.Context, muscleGroup string, from *time.Time) (map[string]exercises.ExercisePercentageInfo, error) {
	if s.userID == "" {
		return nil, ErrNoUser
	}
	return s.analyzer.ExercisePercentages(ctx, s.userID, muscleGroup, from)
}

func (s *ContextService) GetMuscleGroupPercentages(ctx context.Context, from *time.Time) (map[string]float64, error) {
	if s.userID == "" {
		return nil, ErrNoUser
	}
	return s.analyzer.MuscleGroupPercentages(ctx, s.userID, from)
}

// loadState is best effort; tools still answer without the user's state.
func (s *ContextService) loadState(ctx context.Context) *state.AppState {
	if s.userID == "" || s.states == nil {
		return nil
	}
	appState, err := s.states.Load(ctx, s.userID)
	if err != nil {
		log.Debugf("mcp context, user %s, state not loaded: %s", s.userID, err)
		return nil
	}
	return appState
}
