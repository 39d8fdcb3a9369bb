package state

var DefaultPinnedMetrics = []string{"zpi-trend", "volume-progression"}

// MaxSetsPerExercise bounds the set count of a prescribed exercise.
const MaxSetsPerExercise = 20

// DefaultState returns the state of a fresh install.
func DefaultState() *AppState {
	persona := PersonaAres
	return &AppState{
		CurrentView:         "workouts",
		Routines:            []Routine{},
		DailyMeals:          []Meal{},
		MealHistory:         map[string][]Meal{},
		WorkoutHistory:      []WorkoutHistoryItem{},
		ActivityLog:         map[string]DayStatus{},
		RescheduledWorkouts: map[string]*WorkoutDay{},
		PinnedMetrics:       append([]string(nil), DefaultPinnedMetrics...),
		DailyMetricsHistory: []DailyMetric{},
		WeightHistory:       []WeightRecord{},
		ConnectedWearables:  []string{},
		Persona:             &persona,
		UserExercises:       []ExerciseMetadata{},
		Theme:               ThemeDark,
	}
}

// Normalize fills nil collections, so decoded partial states behave like the default one.
func (s *AppState) Normalize() {
	if s.Routines == nil {
		s.Routines = []Routine{}
	}
	if s.DailyMeals == nil {
		s.DailyMeals = []Meal{}
	}
	if s.MealHistory == nil {
		s.MealHistory = map[string][]Meal{}
	}
	if s.WorkoutHistory == nil {
		s.WorkoutHistory = []WorkoutHistoryItem{}
	}
	if s.ActivityLog == nil {
		s.ActivityLog = map[string]DayStatus{}
	}
	if s.RescheduledWorkouts == nil {
		s.RescheduledWorkouts = map[string]*WorkoutDay{}
	}
	if s.PinnedMetrics == nil {
		s.PinnedMetrics = append([]string(nil), DefaultPinnedMetrics...)
	}
	if s.DailyMetricsHistory == nil {
		s.DailyMetricsHistory = []DailyMetric{}
	}
	if s.WeightHistory == nil {
		s.WeightHistory = []WeightRecord{}
	}
	if s.ConnectedWearables == nil {
		s.ConnectedWearables = []string{}
	}
	if s.Profile != nil && s.Profile.Timezone != "" && !ValidTimezone(s.Profile.Timezone) {
		s.Profile.Timezone = ""
	}
	if s.UserExercises == nil {
		s.UserExercises = []ExerciseMetadata{}
	}
	if s.Theme == "" {
		s.Theme = ThemeDark
	}
	if s.CurrentView == "" {
		s.CurrentView = "workouts"
	}
	// a null entry is how a cleared reschedule travels over the wire
	for date, w := range s.RescheduledWorkouts {
		if w == nil {
			delete(s.RescheduledWorkouts, date)
		}
	}
}

// ForStorage returns a shallow copy with the remember-me rule applied:
// unless rememberMe is set, the stored copy is never authenticated.
func (s *AppState) ForStorage() *AppState {
	cp := *s
	if !cp.RememberMe {
		cp.IsAuthenticated = false
	}
	return &cp
}
