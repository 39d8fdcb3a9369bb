package protocol

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/gymstats/daily"
	"github.com/2beens/aresprotocol/internal/gymstats/events"
	"github.com/2beens/aresprotocol/internal/gymstats/exercises"
	"github.com/2beens/aresprotocol/internal/gymstats/schedule"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

// caloriesPerSecond is the flat burn estimate of a logged session.
const caloriesPerSecond = 0.12

const defaultFocus = "Movement"

type CompleteWorkoutRequest struct {
	WorkoutID    string                         `json:"workoutId,omitempty"`
	DurationSecs int                            `json:"durationSecs"`
	Logs         map[string][]state.ExerciseLog `json:"logs"`
}

type CompleteWorkoutResult struct {
	Item   state.WorkoutHistoryItem `json:"item"`
	Metric state.DailyMetric        `json:"metric"`
	Volume float64                  `json:"volume"`
	Sets   int                      `json:"sets"`
}

// StartWorkout makes the workout active and stamps the start time. An empty id
// starts the workout scheduled for today.
func (s *Service) StartWorkout(ctx context.Context, userID, workoutID string) (_ *state.AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.startWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout", workoutID))

	return s.states.Update(ctx, userID, func(appState *state.AppState) error {
		if err := requireOnboarded(appState); err != nil {
			return err
		}

		var workout *state.WorkoutDay
		if workoutID == "" {
			workout = schedule.TodayWorkout(appState, s.today(appState))
			if workout == nil {
				return ErrNoWorkoutScheduled
			}
		} else if workout = findPlanDay(appState, workoutID); workout == nil {
			return fmt.Errorf("%w: %s", ErrWorkoutNotFound, workoutID)
		}

		w := *workout
		started := s.Now().UnixMilli()
		appState.ActiveWorkout = &w
		appState.WorkoutStartTime = &started
		return nil
	})
}

// CancelWorkout drops the active workout without logging anything.
func (s *Service) CancelWorkout(ctx context.Context, userID string) (*state.AppState, error) {
	return s.states.Update(ctx, userID, func(appState *state.AppState) error {
		appState.ActiveWorkout = nil
		appState.WorkoutStartTime = nil
		return nil
	})
}

// CompleteWorkout appends the session to the history, marks today and refreshes
// today's metric. The exercise log and the training event follow the saved state.
func (s *Service) CompleteWorkout(ctx context.Context, userID string, req CompleteWorkoutRequest) (_ *CompleteWorkoutResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.completeWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if req.DurationSecs < 0 {
		return nil, fmt.Errorf("%w: negative duration", ErrInvalidInput)
	}

	var (
		result  CompleteWorkoutResult
		workout *state.WorkoutDay
		userEx  []state.ExerciseMetadata
	)
	_, err = s.states.Update(ctx, userID, func(appState *state.AppState) error {
		if err := requireOnboarded(appState); err != nil {
			return err
		}
		today := s.today(appState)

		switch {
		case req.WorkoutID != "":
			workout = findPlanDay(appState, req.WorkoutID)
		case appState.ActiveWorkout != nil:
			workout = appState.ActiveWorkout
		default:
			workout = schedule.TodayWorkout(appState, today)
		}

		focus := defaultFocus
		if workout != nil && workout.Focus != "" {
			focus = workout.Focus
		}
		item := state.WorkoutHistoryItem{
			Date:     today,
			Focus:    focus,
			Duration: req.DurationSecs / 60,
			Calories: int(float64(req.DurationSecs) * caloriesPerSecond),
			Logs:     req.Logs,
		}
		if item.Logs == nil {
			item.Logs = map[string][]state.ExerciseLog{}
		}

		appState.WorkoutHistory = append(appState.WorkoutHistory, item)
		appState.ActivityLog[today] = state.DayStatusFull
		delete(appState.RescheduledWorkouts, today)
		appState.ActiveWorkout = nil
		appState.WorkoutStartTime = nil

		// the refresh re-derives today's status from meals and history
		result.Metric = s.daily.Refresh(ctx, userID, appState)
		result.Item = item
		result.Volume = daily.SessionVolume(item)
		if workout != nil {
			w := *workout
			workout = &w
		}
		userEx = appState.UserExercises
		return nil
	})
	if err != nil {
		return nil, err
	}

	sets := exercises.FromWorkout(userID, workout, result.Item, s.Now(), s.resolver(userEx))
	if len(sets) > 0 {
		if n, err := s.sets.AddBatch(ctx, sets); err != nil {
			log.Errorf("complete workout, user %s, log %d sets: %s", userID, len(sets), err)
		} else {
			result.Sets = n
		}
	}

	if _, err := s.events.AddTrainingFinish(ctx, userID, events.TrainingFinish{
		Timestamp:   s.Now(),
		Focus:       result.Item.Focus,
		DurationMin: result.Item.Duration,
		Calories:    result.Item.Calories,
		Volume:      result.Volume,
	}); err != nil {
		log.Errorf("complete workout, user %s, record event: %s", userID, err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsCompleted.Inc()
	}

	span.SetAttributes(attribute.Float64("volume", result.Volume), attribute.Int("sets", result.Sets))
	return &result, nil
}

// Reschedule moves a missed workout onto target. Without an id the workout the
// missed date was scheduled for is moved.
func (s *Service) Reschedule(ctx context.Context, userID, missedDate, targetDate, workoutID string) (_ *state.AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.reschedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	missed, err := state.ParseDate(missedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: missed date: %s", ErrInvalidInput, err)
	}
	if _, err := state.ParseDate(targetDate); err != nil {
		return nil, fmt.Errorf("%w: target date: %s", ErrInvalidInput, err)
	}

	var moved state.WorkoutDay
	appState, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		if err := requireOnboarded(appState); err != nil {
			return err
		}
		if targetDate < s.today(appState) {
			return fmt.Errorf("%w: target date in the past", ErrInvalidInput)
		}

		var workout *state.WorkoutDay
		if workoutID != "" {
			workout = findPlanDay(appState, workoutID)
		} else {
			workout = schedule.WorkoutForDate(appState, missed)
		}
		if workout == nil {
			return ErrWorkoutNotFound
		}

		moved = *workout
		schedule.Reschedule(appState, missedDate, targetDate, moved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.events.AddWorkoutRescheduled(ctx, userID, events.WorkoutRescheduled{
		Timestamp:  s.Now(),
		MissedDate: missedDate,
		TargetDate: targetDate,
		WorkoutID:  moved.ID,
	}); err != nil {
		log.Errorf("reschedule, user %s, record event: %s", userID, err)
	}
	return appState, nil
}

// ToggleDayStatus marks a day as rest or sick, or clears the mark when it is already set.
func (s *Service) ToggleDayStatus(ctx context.Context, userID, date string, status state.DayStatus) (_ state.DayStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.toggleDayStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !status.IsSticky() {
		return "", fmt.Errorf("%w: status %q cannot be set by hand", ErrInvalidInput, status)
	}
	if _, err := state.ParseDate(date); err != nil {
		return "", fmt.Errorf("%w: date: %s", ErrInvalidInput, err)
	}

	var result state.DayStatus
	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		result = schedule.ToggleStatus(appState, date, status)
		return nil
	}); err != nil {
		return "", err
	}

	if _, err := s.events.AddDayStatusChange(ctx, userID, events.DayStatusChange{
		Timestamp: s.Now(),
		Date:      date,
		Status:    string(result),
	}); err != nil {
		log.Errorf("toggle day status, user %s, record event: %s", userID, err)
	}
	return result, nil
}

type TodayView struct {
	Date      string                   `json:"date"`
	Workout   *state.WorkoutDay        `json:"workout"`
	Status    state.DayStatus          `json:"status,omitempty"`
	Completed bool                     `json:"completed"`
	Missed    []schedule.MissedWorkout `json:"missed"`
	Meals     []state.Meal             `json:"meals"`
}

func (s *Service) Today(ctx context.Context, userID string) (*TodayView, error) {
	appState, err := s.states.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOnboarded(appState); err != nil {
		return nil, err
	}

	today := s.today(appState)
	view := &TodayView{
		Date:    today,
		Workout: schedule.TodayWorkout(appState, today),
		Status:  appState.ActivityLog[today],
		Missed:  schedule.MissedWorkouts(appState, today),
		Meals:   appState.DailyMeals,
	}
	for _, h := range appState.WorkoutHistory {
		if h.Date == today {
			view.Completed = true
			break
		}
	}
	return view, nil
}

// Calendar returns the days of a month with their statuses.
func (s *Service) Calendar(ctx context.Context, userID string, year int, month time.Month) ([]schedule.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}
	appState, err := s.states.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return schedule.Month(appState, year, month, s.today(appState)), nil
}
