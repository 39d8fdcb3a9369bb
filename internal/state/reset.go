package state

import "strings"

const customWorkoutPrefix = "custom-"

// ApplyDailyReset rolls the state over to today: yesterday's meals are archived
// under the last reset date, meals get unchecked and an ad-hoc active workout is
// dropped. Returns false when nothing had to be done.
func ApplyDailyReset(s *AppState, today string) bool {
	if !s.IsOnboarded {
		return false
	}
	if s.LastResetDate != nil && *s.LastResetDate == today {
		return false
	}

	if s.LastResetDate != nil && *s.LastResetDate != "" {
		if s.MealHistory == nil {
			s.MealHistory = map[string][]Meal{}
		}
		archived := make([]Meal, len(s.DailyMeals))
		copy(archived, s.DailyMeals)
		s.MealHistory[*s.LastResetDate] = archived
	}

	for i := range s.DailyMeals {
		s.DailyMeals[i].Checked = false
	}

	if s.ActiveWorkout != nil && strings.HasPrefix(s.ActiveWorkout.ID, customWorkoutPrefix) {
		s.ActiveWorkout = nil
	}

	t := today
	s.LastResetDate = &t
	return true
}
