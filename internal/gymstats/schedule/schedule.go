package schedule

import (
	"slices"
	"time"

	"github.com/2beens/aresprotocol/internal/state"
)

// MissedLookbackDays is how far back missed workouts are searched.
const MissedLookbackDays = 14

type MissedWorkout struct {
	Date    string            `json:"date"`
	Workout *state.WorkoutDay `json:"workout"`
}

// DayKind is what a calendar day shows.
type DayKind string

const (
	DayKindFull        DayKind = "full"
	DayKindRest        DayKind = "rest"
	DayKindRescheduled DayKind = "rescheduled"
	DayKindMissed      DayKind = "missed"
	DayKindOff         DayKind = "off"
	DayKindPlanned     DayKind = "planned"
)

type CalendarDay struct {
	Date         string          `json:"date"`
	Status       state.DayStatus `json:"status,omitempty"`
	Kind         DayKind         `json:"kind"`
	IsWorkoutDay bool            `json:"isWorkoutDay"`
	IsToday      bool            `json:"isToday"`
}

func selectedDays(appState *state.AppState) []int {
	if appState.Profile == nil {
		return nil
	}
	return appState.Profile.SelectedDays
}

// IsWorkoutDay reports whether the weekday of date is one of the training days.
func IsWorkoutDay(appState *state.AppState, date time.Time) bool {
	return slices.Contains(selectedDays(appState), int(date.Weekday()))
}

// WorkoutForDate picks the plan day for date: the n-th selected weekday of the
// week trains the n-th plan day, wrapping around shorter plans.
func WorkoutForDate(appState *state.AppState, date time.Time) *state.WorkoutDay {
	plan := appState.Plan()
	days := selectedDays(appState)
	if len(plan) == 0 || len(days) == 0 {
		return nil
	}

	weekday := int(date.Weekday())
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	phase := slices.Index(sorted, weekday)
	if phase < 0 {
		return nil
	}
	return &plan[phase%len(plan)]
}

// TodayWorkout is the rescheduled workout of the day if any, otherwise the
// scheduled one unless the day is marked rest.
func TodayWorkout(appState *state.AppState, today string) *state.WorkoutDay {
	if w := appState.RescheduledWorkouts[today]; w != nil {
		return w
	}
	if appState.ActivityLog[today] == state.DayStatusRest {
		return nil
	}
	date, err := state.ParseDate(today)
	if err != nil {
		return nil
	}
	return WorkoutForDate(appState, date)
}

func hasHistory(appState *state.AppState, date string) bool {
	for _, h := range appState.WorkoutHistory {
		if h.Date == date {
			return true
		}
	}
	return false
}

func isRescheduled(appState *state.AppState, workoutID string) bool {
	for _, w := range appState.RescheduledWorkouts {
		if w != nil && w.ID == workoutID {
			return true
		}
	}
	return false
}

// MissedWorkouts lists training days of the last two weeks, newest first, that
// have no status and no history and whose workout was not moved elsewhere.
// Nothing is missed once a workout was completed today.
func MissedWorkouts(appState *state.AppState, today string) []MissedWorkout {
	if hasHistory(appState, today) {
		return nil
	}
	todayDate, err := state.ParseDate(today)
	if err != nil {
		return nil
	}

	joinDate := ""
	if appState.Profile != nil {
		joinDate = appState.Profile.JoinDate
	}

	var missed []MissedWorkout
	for i := 1; i <= MissedLookbackDays; i++ {
		d := todayDate.AddDate(0, 0, -i)
		date := d.Format(state.DateLayout)
		if joinDate != "" && date < joinDate {
			continue
		}
		if !IsWorkoutDay(appState, d) {
			continue
		}
		if _, ok := appState.ActivityLog[date]; ok || hasHistory(appState, date) {
			continue
		}

		workout := WorkoutForDate(appState, d)
		if workout != nil && isRescheduled(appState, workout.ID) {
			continue
		}
		missed = append(missed, MissedWorkout{Date: date, Workout: workout})
	}
	return missed
}

// Reschedule moves workout to target and marks the missed date.
func Reschedule(appState *state.AppState, missedDate, targetDate string, workout state.WorkoutDay) {
	appState.RescheduledWorkouts[targetDate] = &workout
	appState.ActivityLog[missedDate] = state.DayStatusMissed
}

// ToggleStatus sets status on date, or clears it when already set.
// Returns the resulting status.
func ToggleStatus(appState *state.AppState, date string, status state.DayStatus) state.DayStatus {
	if appState.ActivityLog[date] == status {
		delete(appState.ActivityLog, date)
		return ""
	}
	appState.ActivityLog[date] = status
	return status
}

// Month returns the calendar days of the month containing any day of year/month.
func Month(appState *state.AppState, year int, month time.Month, today string) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var days []CalendarDay
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := d.Format(state.DateLayout)
		status := appState.ActivityLog[date]
		workoutDay := IsWorkoutDay(appState, d)

		kind := DayKindPlanned
		switch {
		case status == state.DayStatusFull:
			kind = DayKindFull
		case status == state.DayStatusRest:
			kind = DayKindRest
		case appState.RescheduledWorkouts[date] != nil:
			kind = DayKindRescheduled
		case status == state.DayStatusMissed || (status == "" && date < today && workoutDay):
			kind = DayKindMissed
		case !workoutDay:
			kind = DayKindOff
		}

		days = append(days, CalendarDay{
			Date:         date,
			Status:       status,
			Kind:         kind,
			IsWorkoutDay: workoutDay,
			IsToday:      date == today,
		})
	}
	return days
}
