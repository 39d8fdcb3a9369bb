package protocol

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/2beens/aresprotocol/internal/ai"
	"github.com/2beens/aresprotocol/internal/gymstats/events"
	"github.com/2beens/aresprotocol/internal/gymstats/exercises"
	"github.com/2beens/aresprotocol/internal/gymstats/warmup"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/metrics"
	"github.com/2beens/aresprotocol/internal/wearable"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=protocol_test

var (
	ErrNotOnboarded       = errors.New("user is not onboarded")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRoutineNotFound    = errors.New("routine not found")
	ErrMealNotFound       = errors.New("meal not found")
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrDuplicateExercise  = errors.New("exercise already exists")
	ErrNoWorkoutScheduled = errors.New("no workout scheduled")
)

type stateStore interface {
	Load(ctx context.Context, userID string) (*state.AppState, error)
	Update(ctx context.Context, userID string, mutate func(*state.AppState) error) (*state.AppState, error)
	UpdateOrInit(ctx context.Context, userID string, mutate func(*state.AppState) error) (*state.AppState, error)
}

type planner interface {
	GenerateFitnessPlan(ctx context.Context, profile *state.UserProfile) (*ai.PlanResult, error)
	RegenerateDiet(ctx context.Context, profile *state.UserProfile) ([]state.Meal, error)
	AnalyzePhysique(ctx context.Context, image []byte, mimeType string) (string, error)
	ProviderName() string
}

type exerciseCatalog interface {
	Lookup(name string, userExercises []state.ExerciseMetadata) (*state.ExerciseMetadata, bool)
	Search(query string, userExercises []state.ExerciseMetadata, limit int) []state.ExerciseMetadata
	Merged(userExercises []state.ExerciseMetadata) []state.ExerciseMetadata
}

type setLog interface {
	AddBatch(ctx context.Context, sets []exercises.Set) (int, error)
}

type eventRecorder interface {
	AddTrainingFinish(ctx context.Context, userID string, tf events.TrainingFinish) (int, error)
	AddWeightReport(ctx context.Context, userID string, wr events.WeightReport) (int, error)
	AddWorkoutRescheduled(ctx context.Context, userID string, wr events.WorkoutRescheduled) (int, error)
	AddDayStatusChange(ctx context.Context, userID string, dsc events.DayStatusChange) (int, error)
	AddPlanSynthesized(ctx context.Context, userID string, ps events.PlanSynthesized) (int, error)
}

type dailyRefresher interface {
	Refresh(ctx context.Context, userID string, appState *state.AppState) state.DailyMetric
}

type wearables interface {
	Toggle(appState *state.AppState, providerID string) (bool, error)
	Fetch(ctx context.Context, userID, providerID string) (*wearable.Telemetry, error)
	Providers() []string
}

// Service runs the user facing operations over the stored app state. The state
// is the source of truth; the exercise log and event log are best effort
// projections written after the state is saved.
type Service struct {
	states         stateStore
	planner        planner
	catalog        exerciseCatalog
	sets           setLog
	events         eventRecorder
	daily          dailyRefresher
	wearables      wearables
	warmups        *warmup.Generator
	metricsManager *metrics.Manager

	// injectable for tests
	Now   func() time.Time
	NewID func() string
}

type Deps struct {
	States         stateStore
	Planner        planner
	Catalog        exerciseCatalog
	Sets           setLog
	Events         eventRecorder
	Daily          dailyRefresher
	Wearables      wearables
	Warmups        *warmup.Generator
	MetricsManager *metrics.Manager
}

func NewService(deps Deps) *Service {
	return &Service{
		states:         deps.States,
		planner:        deps.Planner,
		catalog:        deps.Catalog,
		sets:           deps.Sets,
		events:         deps.Events,
		daily:          deps.Daily,
		wearables:      deps.Wearables,
		warmups:        deps.Warmups,
		metricsManager: deps.MetricsManager,
		Now:            time.Now,
		NewID:          uuid.NewString,
	}
}

func (s *Service) today(appState *state.AppState) string {
	return state.LocalDate(s.Now(), appState.Timezone())
}

func requireOnboarded(appState *state.AppState) error {
	if !appState.IsOnboarded || appState.Profile == nil {
		return ErrNotOnboarded
	}
	return nil
}

// resolver adapts the catalog to name based muscle lookups for the given user.
func (s *Service) resolver(userExercises []state.ExerciseMetadata) func(string) (state.MuscleGroup, bool) {
	return func(name string) (state.MuscleGroup, bool) {
		m, ok := s.catalog.Lookup(name, userExercises)
		if !ok {
			return "", false
		}
		return m.PrimaryMuscle, true
	}
}

func findPlanDay(appState *state.AppState, workoutID string) *state.WorkoutDay {
	plan := appState.Plan()
	for i := range plan {
		if plan[i].ID == workoutID {
			return &plan[i]
		}
	}
	return nil
}
