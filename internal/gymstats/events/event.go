package events

import (
	"fmt"
	"strconv"
	"time"
)

type TrainingFinish struct {
	Timestamp   time.Time `json:"timestamp"`
	Focus       string    `json:"focus"`
	DurationMin int       `json:"durationMin"`
	Calories    int       `json:"calories"`
	Volume      float64   `json:"volume"`
}

type WeightReport struct {
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
}

type WorkoutRescheduled struct {
	Timestamp  time.Time `json:"timestamp"`
	MissedDate string    `json:"missedDate"`
	TargetDate string    `json:"targetDate"`
	WorkoutID  string    `json:"workoutId"`
}

type DayStatusChange struct {
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	// empty when the status was cleared
	Status string `json:"status"`
}

type PlanSynthesized struct {
	Timestamp time.Time `json:"timestamp"`
	Days      int       `json:"days"`
	Meals     int       `json:"meals"`
	Provider  string    `json:"provider"`
}

// Event (DB level type) is an append-only record of something the user did:
//   - training finished (focus, duration, calories, volume)
//   - weight report
//   - workout rescheduled (missed date, target date, workout)
//   - day status change (rest / sick toggles)
//   - plan synthesized (onboarding or diet regeneration)
type Event struct {
	ID        int               `json:"id"`
	UserID    string            `json:"userId"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func NewTrainingFinishEvent(userID string, tf TrainingFinish) Event {
	return Event{
		UserID:    userID,
		Type:      EventTypeTrainingFinished,
		Timestamp: tf.Timestamp,
		Data: map[string]string{
			"focus":       tf.Focus,
			"durationMin": fmt.Sprintf("%d", tf.DurationMin),
			"calories":    fmt.Sprintf("%d", tf.Calories),
			"volume":      formatFloat(tf.Volume),
		},
	}
}

func NewWeightReportEvent(userID string, wr WeightReport) Event {
	return Event{
		UserID:    userID,
		Type:      EventTypeWeightReport,
		Timestamp: wr.Timestamp,
		Data: map[string]string{
			"weight": formatFloat(wr.Weight),
		},
	}
}

func NewWorkoutRescheduledEvent(userID string, wr WorkoutRescheduled) Event {
	return Event{
		UserID:    userID,
		Type:      EventTypeWorkoutRescheduled,
		Timestamp: wr.Timestamp,
		Data: map[string]string{
			"missedDate": wr.MissedDate,
			"targetDate": wr.TargetDate,
			"workoutId":  wr.WorkoutID,
		},
	}
}

func NewDayStatusChangeEvent(userID string, dsc DayStatusChange) Event {
	return Event{
		UserID:    userID,
		Type:      EventTypeDayStatusChanged,
		Timestamp: dsc.Timestamp,
		Data: map[string]string{
			"date":   dsc.Date,
			"status": dsc.Status,
		},
	}
}

func NewPlanSynthesizedEvent(userID string, ps PlanSynthesized) Event {
	return Event{
		UserID:    userID,
		Type:      EventTypePlanSynthesized,
		Timestamp: ps.Timestamp,
		Data: map[string]string{
			"days":     fmt.Sprintf("%d", ps.Days),
			"meals":    fmt.Sprintf("%d", ps.Meals),
			"provider": ps.Provider,
		},
	}
}

// EventType can be one of:
//   - training_finished
//   - weight_report
//   - workout_rescheduled
//   - day_status_changed
//   - plan_synthesized
type EventType string

const (
	EventTypeTrainingFinished   EventType = "training_finished"
	EventTypeWeightReport       EventType = "weight_report"
	EventTypeWorkoutRescheduled EventType = "workout_rescheduled"
	EventTypeDayStatusChanged   EventType = "day_status_changed"
	EventTypePlanSynthesized    EventType = "plan_synthesized"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeTrainingFinished,
		EventTypeWeightReport,
		EventTypeWorkoutRescheduled,
		EventTypeDayStatusChanged,
		EventTypePlanSynthesized:
		return true
	default:
		return false
	}
}
