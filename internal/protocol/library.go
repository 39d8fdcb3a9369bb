package protocol

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/2beens/aresprotocol/internal/gymstats/warmup"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

const (
	customExercisePrefix = "custom-"
	defaultSearchLimit   = 20
)

// AddUserExercise adds an exercise to the user's library. Names are unique
// across the directory and the user's own exercises.
func (s *Service) AddUserExercise(ctx context.Context, userID string, ex state.ExerciseMetadata) (_ *state.ExerciseMetadata, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.addUserExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ex.Name = strings.TrimSpace(ex.Name)
	if ex.Name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrInvalidInput)
	}
	if !ex.PrimaryMuscle.IsValid() {
		return nil, fmt.Errorf("%w: unknown muscle group %q", ErrInvalidInput, ex.PrimaryMuscle)
	}
	for _, m := range ex.SecondaryMuscles {
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: unknown muscle group %q", ErrInvalidInput, m)
		}
	}
	if ex.ID == "" {
		ex.ID = customExercisePrefix + s.NewID()
	}

	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		for _, existing := range s.catalog.Merged(appState.UserExercises) {
			if strings.EqualFold(existing.Name, ex.Name) {
				return fmt.Errorf("%w: %s", ErrDuplicateExercise, ex.Name)
			}
		}
		appState.UserExercises = append(appState.UserExercises, ex)
		return nil
	}); err != nil {
		return nil, err
	}
	return &ex, nil
}

// SaveRoutine stores a user built routine, replacing the one with the same id.
func (s *Service) SaveRoutine(ctx context.Context, userID string, routine state.Routine) (_ *state.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.saveRoutine")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	routine.Name = strings.TrimSpace(routine.Name)
	if routine.Name == "" {
		return nil, fmt.Errorf("%w: routine name is required", ErrInvalidInput)
	}
	if len(routine.Days) == 0 {
		return nil, fmt.Errorf("%w: routine has no days", ErrInvalidInput)
	}
	if routine.ID == "" {
		routine.ID = s.NewID()
	}
	for i := range routine.Days {
		if routine.Days[i].ID == "" {
			routine.Days[i].ID = s.NewID()
		}
	}
	// only synthesized routines are official
	routine.IsOfficial = false

	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		if err := requireOnboarded(appState); err != nil {
			return err
		}
		if routine.Creator == "" {
			routine.Creator = appState.Profile.Name
		}
		i := slices.IndexFunc(appState.Routines, func(r state.Routine) bool { return r.ID == routine.ID })
		switch {
		case i < 0:
			appState.Routines = append(appState.Routines, routine)
		case appState.Routines[i].IsOfficial:
			return fmt.Errorf("%w: official routine %s cannot be changed", ErrInvalidInput, routine.ID)
		default:
			appState.Routines[i] = routine
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &routine, nil
}

// ActivateRoutine switches the active routine; the split restarts today.
func (s *Service) ActivateRoutine(ctx context.Context, userID, routineID string) (_ *state.AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.activateRoutine")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.states.Update(ctx, userID, func(appState *state.AppState) error {
		i := slices.IndexFunc(appState.Routines, func(r state.Routine) bool { return r.ID == routineID })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrRoutineNotFound, routineID)
		}
		id := appState.Routines[i].ID
		today := s.today(appState)
		appState.ActiveRoutineID = &id
		appState.WorkoutPlan = appState.Routines[i].Days
		appState.SplitStartDate = &today
		return nil
	})
}

// WarmUp builds the warm-up of a plan day, or of the given exercises when no id is set.
func (s *Service) WarmUp(ctx context.Context, userID, workoutID string, exercises []state.Exercise) ([]warmup.Exercise, error) {
	if workoutID == "" {
		if len(exercises) == 0 {
			return nil, fmt.Errorf("%w: no exercises", ErrInvalidInput)
		}
		return s.warmups.Generate(exercises), nil
	}

	appState, err := s.states.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	day := findPlanDay(appState, workoutID)
	if day == nil {
		return nil, fmt.Errorf("%w: %s", ErrWorkoutNotFound, workoutID)
	}

	// metadata may be missing on hand made days
	withMeta := slices.Clone(day.Exercises)
	for i := range withMeta {
		if withMeta[i].Metadata != nil {
			continue
		}
		if m, ok := s.catalog.Lookup(withMeta[i].Name, appState.UserExercises); ok {
			withMeta[i].Metadata = m
		}
	}
	return s.warmups.Generate(withMeta), nil
}

// SearchExercises searches the directory; with a user id the user's exercises are included.
func (s *Service) SearchExercises(ctx context.Context, userID, query string, limit int) ([]state.ExerciseMetadata, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	var userExercises []state.ExerciseMetadata
	if userID != "" {
		appState, err := s.states.Load(ctx, userID)
		if err != nil {
			return nil, err
		}
		userExercises = appState.UserExercises
	}
	if strings.TrimSpace(query) == "" {
		all := s.catalog.Merged(userExercises)
		if len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}
	return s.catalog.Search(query, userExercises, limit), nil
}
