package protocol

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/gymstats/events"
	"github.com/2beens/aresprotocol/internal/gymstats/nutrition"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

const (
	officialRoutineName    = "ARES OFFICIAL PROTOCOL"
	officialRoutineAuthor  = "Ares"
	defaultRestTimer       = 90
	defaultSetsPerExercise = 3
)

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// ValidateProfile checks the onboarding form.
func ValidateProfile(p *state.UserProfile) error {
	switch {
	case p == nil:
		return fmt.Errorf("%w: profile is required", ErrInvalidInput)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case p.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	case p.Height <= 0:
		return fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	case p.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	case len(p.SelectedDays) == 0:
		return fmt.Errorf("%w: select at least one training day", ErrInvalidInput)
	case strings.TrimSpace(p.CuisinePreference) == "":
		return fmt.Errorf("%w: cuisine preference is required", ErrInvalidInput)
	case !p.Goal.IsValid():
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, p.Goal)
	case p.Gender != "" && !p.Gender.IsValid():
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, p.Gender)
	case p.BodyType != "" && !p.BodyType.IsValid():
		return fmt.Errorf("%w: unknown body type %q", ErrInvalidInput, p.BodyType)
	case p.UnitSystem != "" && !p.UnitSystem.IsValid():
		return fmt.Errorf("%w: unknown unit system %q", ErrInvalidInput, p.UnitSystem)
	}
	for _, d := range p.SelectedDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: invalid week day %d", ErrInvalidInput, d)
		}
	}
	if p.Timezone != "" && !state.ValidTimezone(p.Timezone) {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, p.Timezone)
	}
	return nil
}

// toMetric stores body measures in kg/cm, the unit every computation expects.
func toMetric(p *state.UserProfile) {
	if p.UnitSystem != state.UnitSystemImperial {
		p.UnitSystem = state.UnitSystemMetric
		return
	}
	weightKg, heightCm := nutrition.MetricBody(p)
	p.Weight = round1(weightKg)
	p.Height = round1(heightCm)
	if p.GoalWeight > 0 {
		p.GoalWeight = round1(p.GoalWeight / nutrition.PoundsPerKilo)
	}
	p.UnitSystem = state.UnitSystemMetric
}

// prepareDays assigns ids, catalog metadata and default set configs to a synthesized split.
func (s *Service) prepareDays(days []state.WorkoutDay, userExercises []state.ExerciseMetadata) []state.WorkoutDay {
	for i := range days {
		days[i].ID = s.NewID()
		for j := range days[i].Exercises {
			ex := &days[i].Exercises[j]
			if m, ok := s.catalog.Lookup(ex.Name, userExercises); ok {
				ex.Metadata = m
				if ex.Category == "" {
					ex.Category = m.Category
				}
			}
			if ex.Sets <= 0 {
				ex.Sets = defaultSetsPerExercise
			}
			ex.Sets = min(ex.Sets, state.MaxSetsPerExercise)
			ex.SetConfigs = make([]state.SetType, ex.Sets)
			for k := range ex.SetConfigs {
				ex.SetConfigs[k] = state.SetTypeNormal
			}
		}
	}
	return days
}

func (s *Service) prepareMeals(meals []state.Meal) []state.Meal {
	out := make([]state.Meal, 0, len(meals))
	for _, m := range meals {
		m.ID = s.NewID()
		m.Checked = false
		out = append(out, m)
	}
	return out
}

// Onboard builds the user's protocol: body metrics, maintenance calories, a
// synthesized split and diet, macro targets and the initial official routine.
func (s *Service) Onboard(ctx context.Context, userID string, form state.UserProfile) (_ *state.AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.onboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	profile := form
	if err := ValidateProfile(&profile); err != nil {
		return nil, err
	}
	toMetric(&profile)
	profile.GymDaysPerWeek = len(profile.SelectedDays)
	if profile.MaintenanceCalories <= 0 {
		profile.MaintenanceCalories = nutrition.MaintenanceCalories(&profile)
	}

	var userExercises []state.ExerciseMetadata
	current, err := s.states.Load(ctx, userID)
	switch {
	case err == nil:
		userExercises = current.UserExercises
	case errors.Is(err, state.ErrStateNotFound):
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	// synthesis is slow, it runs before the state lock is taken
	plan, err := s.planner.GenerateFitnessPlan(ctx, &profile)
	if err != nil {
		return nil, err
	}

	days := s.prepareDays(plan.WorkoutDays(), userExercises)
	meals := make([]state.Meal, 0, len(plan.DietPlan))
	for _, m := range plan.DietPlan {
		meals = append(meals, m.Meal())
	}
	meals = s.prepareMeals(meals)

	targets := nutrition.MacroTargets(profile.Goal, profile.Weight, profile.MaintenanceCalories)
	profile.TargetProtein = targets.Protein
	profile.TargetCarbs = targets.Carbs
	profile.TargetFats = targets.Fats
	profile.TargetFiber = targets.Fiber
	if profile.GoalWeight <= 0 {
		profile.GoalWeight = plan.GoalWeight
	}
	if profile.TargetBodyFat <= 0 {
		profile.TargetBodyFat = plan.TargetBodyFat
	}
	profile.RestTimerDuration = defaultRestTimer
	profile.Persona = state.PersonaAres

	routine := state.Routine{
		ID:          fmt.Sprintf("initial-%d", s.Now().UnixMilli()),
		Name:        officialRoutineName,
		Creator:     officialRoutineAuthor,
		Days:        days,
		Description: plan.CardioRecommendation,
		IsOfficial:  true,
	}

	appState, err := s.states.UpdateOrInit(ctx, userID, func(appState *state.AppState) error {
		today := state.LocalDate(s.Now(), profile.Timezone)
		profile.JoinDate = today

		p := profile
		appState.Profile = &p
		appState.Routines = []state.Routine{routine}
		appState.ActiveRoutineID = &routine.ID
		appState.WorkoutPlan = days
		appState.SplitStartDate = &today
		appState.DailyMeals = meals
		appState.WeightHistory = []state.WeightRecord{{Date: today, Weight: profile.Weight}}
		appState.IsOnboarded = true
		appState.CurrentView = "workouts"
		persona := state.PersonaAres
		appState.Persona = &persona
		// nothing to archive on the first day
		appState.LastResetDate = &today
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.events.AddPlanSynthesized(ctx, userID, events.PlanSynthesized{
		Timestamp: s.Now(),
		Days:      len(days),
		Meals:     len(meals),
		Provider:  s.planner.ProviderName(),
	}); err != nil {
		log.Errorf("onboard, user %s, record plan event: %s", userID, err)
	}

	log.Infof("user %s onboarded: %d day split, %d meals, %.0f kcal", userID, len(days), len(meals), profile.MaintenanceCalories)
	return appState, nil
}

// demoProfile mirrors the fixed demo account of the mobile client.
func demoProfile(today string) state.UserProfile {
	return state.UserProfile{
		Name:                "Julian Sterling",
		Age:                 32,
		Weight:              85,
		Height:              188,
		Gender:              state.GenderMale,
		BodyType:            state.BodyTypeMesomorph,
		UnitSystem:          state.UnitSystemMetric,
		SelectedDays:        []int{1, 2, 4, 5},
		GymDaysPerWeek:      4,
		Goal:                state.GoalMaintenance,
		GoalWeight:          82,
		CurrentBodyFat:      15,
		TargetBodyFat:       12,
		CardioPreference:    []string{"LISS"},
		CuisinePreference:   "Clean Modern",
		MaintenanceCalories: 2950,
		TargetProtein:       180,
		TargetCarbs:         350,
		TargetFats:          75,
		TargetFiber:         40,
		JoinDate:            today,
		PlanDurationMonths:  6,
		RestTimerDuration:   defaultRestTimer,
		Persona:             state.PersonaAres,
	}
}

// Demo onboards the user with a fixed profile and a one day routine, without plan synthesis.
func (s *Service) Demo(ctx context.Context, userID string) (_ *state.AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.demo")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	directory := s.catalog.Merged(nil)
	if len(directory) == 0 {
		return nil, errors.New("empty exercise directory")
	}
	ex := directory[0]

	return s.states.UpdateOrInit(ctx, userID, func(appState *state.AppState) error {
		today := state.LocalDate(s.Now(), "")
		p := demoProfile(today)
		day := state.WorkoutDay{
			ID:      "1",
			DayName: "NODE 01",
			Focus:   "Precision Anterior",
			Exercises: []state.Exercise{{
				Name:         ex.Name,
				Sets:         3,
				Reps:         "10-12",
				Instructions: "Focus on peak contraction.",
				Category:     ex.Category,
				Metadata:     &ex,
				SetConfigs:   []state.SetType{state.SetTypeNormal, state.SetTypeNormal, state.SetTypeNormal},
			}},
		}
		routine := state.Routine{
			ID:         "skip-demo",
			Name:       "ARES PRIME PROTOCOL",
			Creator:    officialRoutineAuthor,
			Days:       []state.WorkoutDay{day},
			IsOfficial: true,
		}

		appState.IsAuthenticated = true
		appState.RememberMe = true
		appState.IsOnboarded = true
		appState.Profile = &p
		appState.Routines = []state.Routine{routine}
		appState.ActiveRoutineID = &routine.ID
		appState.WorkoutPlan = routine.Days
		appState.SplitStartDate = &today
		appState.DailyMeals = []state.Meal{
			{ID: "m1", Name: "Macro-Optimized Breakfast", Calories: 650, Protein: 45, Carbs: 70, Fats: 15, Fiber: 12},
			{ID: "m2", Name: "Synthesis Lunch", Calories: 800, Protein: 60, Carbs: 85, Fats: 20, Fiber: 10},
		}
		appState.WeightHistory = []state.WeightRecord{{Date: today, Weight: p.Weight}}
		appState.CurrentView = "workouts"
		appState.LastResetDate = &today
		return nil
	})
}
