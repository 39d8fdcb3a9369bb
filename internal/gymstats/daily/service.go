package daily

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/internal/wearable"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=daily_test

type stateUpdater interface {
	Update(ctx context.Context, userID string, mutate func(*state.AppState) error) (*state.AppState, error)
}

type telemetrySource interface {
	FetchPrimary(ctx context.Context, userID string, appState *state.AppState) (*wearable.Telemetry, error)
}

type Service struct {
	states    stateUpdater
	telemetry telemetrySource

	Now func() time.Time
}

func NewService(states stateUpdater, telemetry telemetrySource) *Service {
	return &Service{
		states:    states,
		telemetry: telemetry,
		Now:       time.Now,
	}
}

// Refresh recomputes today's metric of an already loaded state.
// A failing wearable only drops the recovery fields.
func (s *Service) Refresh(ctx context.Context, userID string, appState *state.AppState) state.DailyMetric {
	today := state.LocalDate(s.Now(), appState.Timezone())

	t, err := s.telemetry.FetchPrimary(ctx, userID, appState)
	if err != nil {
		log.Warnf("daily metrics, user %s, telemetry: %s", userID, err)
		t = nil
	}

	var todays []state.WorkoutHistoryItem
	for _, w := range appState.WorkoutHistory {
		if w.Date == today {
			todays = append(todays, w)
		}
	}

	metric := Compute(Input{
		Date:      today,
		Workouts:  todays,
		Meals:     appState.DailyMeals,
		Profile:   appState.Profile,
		Telemetry: t,
	})
	appState.DailyMetricsHistory = Upsert(appState.DailyMetricsHistory, metric)

	current := appState.ActivityLog[today]
	status := DeriveStatus(current, len(todays) > 0, FoodDone(appState.DailyMeals))
	switch {
	case status != "":
		appState.ActivityLog[today] = status
	case current == state.DayStatusFull || current == state.DayStatusWorkoutOnly || current == state.DayStatusFoodOnly:
		// derived status no longer holds, e.g. a meal was unchecked
		delete(appState.ActivityLog, today)
	}

	return metric
}

// RefreshToday loads, recomputes and stores today's metric.
func (s *Service) RefreshToday(ctx context.Context, userID string) (_ *state.DailyMetric, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.daily.refreshToday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	var metric state.DailyMetric
	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		metric = s.Refresh(ctx, userID, appState)
		return nil
	}); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("zpi", metric.ZPI))
	return &metric, nil
}
