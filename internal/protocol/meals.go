package protocol

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/gymstats/events"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

// ToggleMeal flips the checked flag of a meal and refreshes today's metric.
func (s *Service) ToggleMeal(ctx context.Context, userID, mealID string) (_ *state.AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.toggleMeal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.states.Update(ctx, userID, func(appState *state.AppState) error {
		i := slices.IndexFunc(appState.DailyMeals, func(m state.Meal) bool { return m.ID == mealID })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrMealNotFound, mealID)
		}
		appState.DailyMeals[i].Checked = !appState.DailyMeals[i].Checked
		s.daily.Refresh(ctx, userID, appState)
		return nil
	})
}

// RegenerateDiet replaces today's meals with a freshly synthesized diet.
func (s *Service) RegenerateDiet(ctx context.Context, userID string) (_ []state.Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.regenerateDiet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	current, err := s.states.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOnboarded(current); err != nil {
		return nil, err
	}

	generated, err := s.planner.RegenerateDiet(ctx, current.Profile)
	if err != nil {
		return nil, err
	}
	meals := s.prepareMeals(generated)

	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		appState.DailyMeals = meals
		s.daily.Refresh(ctx, userID, appState)
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.events.AddPlanSynthesized(ctx, userID, events.PlanSynthesized{
		Timestamp: s.Now(),
		Meals:     len(meals),
		Provider:  s.planner.ProviderName(),
	}); err != nil {
		log.Errorf("regenerate diet, user %s, record event: %s", userID, err)
	}
	return meals, nil
}

// LogWeight records the weight for a date, today when empty. One record per date.
func (s *Service) LogWeight(ctx context.Context, userID string, weight float64, date string) (_ []state.WeightRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.logWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if date != "" {
		if _, err := state.ParseDate(date); err != nil {
			return nil, fmt.Errorf("%w: date: %s", ErrInvalidInput, err)
		}
	}

	var history []state.WeightRecord
	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		if err := requireOnboarded(appState); err != nil {
			return err
		}
		today := s.today(appState)
		if date == "" {
			date = today
		}

		i := slices.IndexFunc(appState.WeightHistory, func(r state.WeightRecord) bool { return r.Date == date })
		if i >= 0 {
			appState.WeightHistory[i].Weight = weight
		} else {
			appState.WeightHistory = append(appState.WeightHistory, state.WeightRecord{Date: date, Weight: weight})
		}
		slices.SortFunc(appState.WeightHistory, func(a, b state.WeightRecord) int {
			return strings.Compare(a.Date, b.Date)
		})

		// the profile follows the newest record
		latest := appState.WeightHistory[len(appState.WeightHistory)-1]
		appState.Profile.Weight = latest.Weight
		history = appState.WeightHistory
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.events.AddWeightReport(ctx, userID, events.WeightReport{
		Timestamp: s.Now(),
		Weight:    weight,
	}); err != nil {
		log.Errorf("log weight, user %s, record event: %s", userID, err)
	}
	return history, nil
}
