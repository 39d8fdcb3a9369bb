package state

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type ExerciseMetadata struct {
	ID               string        `json:"id" yaml:"id"`
	Name             string        `json:"name" yaml:"name"`
	PrimaryMuscle    MuscleGroup   `json:"primaryMuscle" yaml:"primaryMuscle"`
	SecondaryMuscles []MuscleGroup `json:"secondaryMuscles,omitempty" yaml:"secondaryMuscles,omitempty"`
	AnimationURL     string        `json:"animationUrl" yaml:"animationUrl"`
	YoutubeID        string        `json:"youtubeId,omitempty" yaml:"youtubeId,omitempty"`
	Category         string        `json:"category" yaml:"category"`
	IsCardio         bool          `json:"isCardio,omitempty" yaml:"isCardio,omitempty"`
}

type Exercise struct {
	Name         string            `json:"name"`
	Sets         int               `json:"sets"`
	Reps         string            `json:"reps"`
	Instructions string            `json:"instructions"`
	Category     string            `json:"category"`
	TargetWeight string            `json:"targetWeight,omitempty"`
	Metadata     *ExerciseMetadata `json:"metadata,omitempty"`
	SetConfigs   []SetType         `json:"setConfigs,omitempty"`
}

type WorkoutDay struct {
	ID        string     `json:"id"`
	DayName   string     `json:"dayName"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

type Routine struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Creator     string       `json:"creator"`
	Days        []WorkoutDay `json:"days"`
	Description string       `json:"description,omitempty"`
	IsOfficial  bool         `json:"isOfficial,omitempty"`
}

type Meal struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Calories            float64 `json:"calories"`
	Protein             float64 `json:"protein"`
	Carbs               float64 `json:"carbs"`
	Fats                float64 `json:"fats"`
	Fiber               float64 `json:"fiber"`
	Checked             bool    `json:"checked"`
	CookingInstructions string  `json:"cookingInstructions,omitempty"`
}

type WeightRecord struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type UserProfile struct {
	Name                string     `json:"name"`
	Email               string     `json:"email,omitempty"`
	ProfilePic          string     `json:"profilePic,omitempty"`
	Age                 int        `json:"age"`
	Weight              float64    `json:"weight"`
	Height              float64    `json:"height"`
	Gender              Gender     `json:"gender"`
	BodyType            BodyType   `json:"bodyType"`
	UnitSystem          UnitSystem `json:"unitSystem"`
	SelectedDays        []int      `json:"selectedDays"`
	GymDaysPerWeek      int        `json:"gymDaysPerWeek"`
	Goal                Goal       `json:"goal"`
	GoalWeight          float64    `json:"goalWeight"`
	CurrentBodyFat      float64    `json:"currentBodyFat"`
	TargetBodyFat       float64    `json:"targetBodyFat"`
	CardioPreference    []string   `json:"cardioPreference"`
	CuisinePreference   string     `json:"cuisinePreference"`
	MaintenanceCalories float64    `json:"maintenanceCalories"`
	TargetProtein       float64    `json:"targetProtein"`
	TargetCarbs         float64    `json:"targetCarbs"`
	TargetFats          float64    `json:"targetFats"`
	TargetFiber         float64    `json:"targetFiber"`
	JoinDate            string     `json:"joinDate"`
	PlanDurationMonths  int        `json:"planDurationMonths"`
	RestTimerDuration   int        `json:"restTimerDuration"`
	Persona             Persona    `json:"persona"`
	// IANA zone name the local dates are computed in, UTC when empty
	Timezone string `json:"timezone,omitempty"`
}

// ExerciseLog is a single logged set, values kept as entered.
type ExerciseLog struct {
	Weight         string  `json:"weight"`
	Reps           string  `json:"reps"`
	RIR            string  `json:"rir"`
	Completed      bool    `json:"completed"`
	Type           SetType `json:"type"`
	SupersetWeight string  `json:"supersetWeight,omitempty"`
	SupersetReps   string  `json:"supersetReps,omitempty"`
}

// ParseNumber reads a value as entered. NaN and infinities are not numbers a
// user can log and are rejected like any other unparseable input.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

type WorkoutHistoryItem struct {
	Date     string                   `json:"date"`
	Focus    string                   `json:"focus"`
	Duration int                      `json:"duration"`
	Calories int                      `json:"calories"`
	Logs     map[string][]ExerciseLog `json:"logs"`
}

type DailyMetric struct {
	Date         string   `json:"date"`
	Duration     int      `json:"duration"`
	Volume       float64  `json:"volume"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fats         float64  `json:"fats"`
	Fiber        float64  `json:"fiber"`
	ZPI          int      `json:"zpi"`
	Weight       *float64 `json:"weight,omitempty"`
	HRV          *float64 `json:"hrv,omitempty"`
	Readiness    *float64 `json:"readiness,omitempty"`
	SleepHours   *float64 `json:"sleepHours,omitempty"`
	RHR          *float64 `json:"rhr,omitempty"`
	DeepSleepMin *float64 `json:"deepSleepMin,omitempty"`
}

type AppState struct {
	IsAuthenticated     bool                   `json:"isAuthenticated"`
	RememberMe          bool                   `json:"rememberMe"`
	IsOnboarded         bool                   `json:"isOnboarded"`
	CurrentView         string                 `json:"currentView"`
	Profile             *UserProfile           `json:"profile"`
	Routines            []Routine              `json:"routines"`
	ActiveRoutineID     *string                `json:"activeRoutineId"`
	WorkoutPlan         []WorkoutDay           `json:"workoutPlan"`
	SplitStartDate      *string                `json:"splitStartDate"`
	DailyMeals          []Meal                 `json:"dailyMeals"`
	MealHistory         map[string][]Meal      `json:"mealHistory"`
	ActiveWorkout       *WorkoutDay            `json:"activeWorkout"`
	WorkoutStartTime    *int64                 `json:"workoutStartTime"`
	WorkoutHistory      []WorkoutHistoryItem   `json:"workoutHistory"`
	ActivityLog         map[string]DayStatus   `json:"activityLog"`
	RescheduledWorkouts map[string]*WorkoutDay `json:"rescheduledWorkouts"`
	PinnedMetrics       []string               `json:"pinnedMetrics"`
	DailyMetricsHistory []DailyMetric          `json:"dailyMetricsHistory"`
	WeightHistory       []WeightRecord         `json:"weightHistory"`
	LastResetDate       *string                `json:"lastResetDate"`
	ConnectedWearables  []string               `json:"connectedWearables"`
	Persona             *Persona               `json:"persona"`
	UserExercises       []ExerciseMetadata     `json:"userExercises"`
	Theme               Theme                  `json:"theme"`
}

// SyncPayload is the body the device pushes to the sync endpoint.
type SyncPayload struct {
	Email     string          `json:"email"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SyncMarker is written locally when a push could not reach the cloud.
type SyncMarker struct {
	Pending   bool  `json:"pending"`
	Timestamp int64 `json:"timestamp"`
}

// LocalDate formats t as YYYY-MM-DD in the given IANA zone, UTC when unknown.
func LocalDate(t time.Time, timezone string) string {
	return t.In(Location(timezone)).Format(DateLayout)
}

const DateLayout = "2006-01-02"

func Location(timezone string) *time.Location {
	if !ValidTimezone(timezone) {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidTimezone reports whether tz is a loadable IANA zone name. "Local" depends
// on the host and postgres does not know it.
func ValidTimezone(tz string) bool {
	if tz == "" || tz == "Local" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// Timezone returns the profile timezone, empty when there is no profile.
func (s *AppState) Timezone() string {
	if s.Profile == nil {
		return ""
	}
	return s.Profile.Timezone
}

// ActiveRoutine returns the active routine, the first one when the id is unknown.
func (s *AppState) ActiveRoutine() *Routine {
	if s.ActiveRoutineID != nil {
		for i := range s.Routines {
			if s.Routines[i].ID == *s.ActiveRoutineID {
				return &s.Routines[i]
			}
		}
	}
	if len(s.Routines) > 0 {
		return &s.Routines[0]
	}
	return nil
}

// Plan returns the workout days of the active routine, falling back to workoutPlan.
func (s *AppState) Plan() []WorkoutDay {
	if r := s.ActiveRoutine(); r != nil {
		return r.Days
	}
	return s.WorkoutPlan
}
