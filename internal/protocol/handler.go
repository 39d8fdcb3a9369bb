package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/ai"
	"github.com/2beens/aresprotocol/internal/auth"
	"github.com/2beens/aresprotocol/internal/gymstats/analytics"
	"github.com/2beens/aresprotocol/internal/gymstats/schedule"
	"github.com/2beens/aresprotocol/internal/gymstats/warmup"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=protocol_test

type protocolService interface {
	Onboard(ctx context.Context, userID string, form state.UserProfile) (*state.AppState, error)
	Demo(ctx context.Context, userID string) (*state.AppState, error)
	Today(ctx context.Context, userID string) (*TodayView, error)
	Calendar(ctx context.Context, userID string, year int, month time.Month) ([]schedule.CalendarDay, error)
	StartWorkout(ctx context.Context, userID, workoutID string) (*state.AppState, error)
	CancelWorkout(ctx context.Context, userID string) (*state.AppState, error)
	CompleteWorkout(ctx context.Context, userID string, req CompleteWorkoutRequest) (*CompleteWorkoutResult, error)
	Reschedule(ctx context.Context, userID, missedDate, targetDate, workoutID string) (*state.AppState, error)
	ToggleDayStatus(ctx context.Context, userID, date string, status state.DayStatus) (state.DayStatus, error)
	ToggleMeal(ctx context.Context, userID, mealID string) (*state.AppState, error)
	RegenerateDiet(ctx context.Context, userID string) ([]state.Meal, error)
	LogWeight(ctx context.Context, userID string, weight float64, date string) ([]state.WeightRecord, error)
	AddUserExercise(ctx context.Context, userID string, ex state.ExerciseMetadata) (*state.ExerciseMetadata, error)
	SaveRoutine(ctx context.Context, userID string, routine state.Routine) (*state.Routine, error)
	ActivateRoutine(ctx context.Context, userID, routineID string) (*state.AppState, error)
	WarmUp(ctx context.Context, userID, workoutID string, exercises []state.Exercise) ([]warmup.Exercise, error)
	SearchExercises(ctx context.Context, userID, query string, limit int) ([]state.ExerciseMetadata, error)
	Analytics(ctx context.Context, userID string, rangeType analytics.RangeType, start, end string) (*analytics.Report, error)
	RefreshDaily(ctx context.Context, userID string) (*state.DailyMetric, error)
	ToggleWearable(ctx context.Context, userID, providerID string) (bool, error)
	Telemetry(ctx context.Context, userID string) (*WearableStatus, error)
	PhysiqueScan(ctx context.Context, image []byte, mimeType string) (string, error)
	UpdateSettings(ctx context.Context, userID string, settings Settings) (*state.AppState, error)
}

const (
	maxBodyBytes     = 1 << 20
	maxPhysiqueBytes = 8 << 20
)

type RescheduleRequest struct {
	MissedDate string `json:"missedDate"`
	TargetDate string `json:"targetDate"`
	WorkoutID  string `json:"workoutId,omitempty"`
}

type DayStatusRequest struct {
	Status state.DayStatus `json:"status"`
}

type DayStatusResponse struct {
	Date   string          `json:"date"`
	Status state.DayStatus `json:"status"`
}

type WeightRequest struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date,omitempty"`
}

type StartWorkoutRequest struct {
	WorkoutID string `json:"workoutId,omitempty"`
}

type WarmUpRequest struct {
	Exercises []state.Exercise `json:"exercises"`
}

type WearableToggleResponse struct {
	Provider  string `json:"provider"`
	Connected bool   `json:"connected"`
}

type PhysiqueResponse struct {
	Analysis string `json:"analysis"`
}

type Handler struct {
	service protocolService
}

func NewHandler(service protocolService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the endpoints that need a session. aiMws (rate limiting)
// apply only to the endpoints that call the ai provider.
func (handler *Handler) SetupRoutes(r *mux.Router, aiMws ...mux.MiddlewareFunc) {
	p := r.PathPrefix("/v1/protocol").Subrouter()

	ai := p.NewRoute().Subrouter()
	ai.HandleFunc("/onboard", handler.HandleOnboard).Methods("POST", "OPTIONS").Name("protocol-onboard")
	ai.HandleFunc("/diet/regenerate", handler.HandleRegenerateDiet).Methods("POST", "OPTIONS").Name("protocol-diet-regenerate")
	ai.HandleFunc("/physique", handler.HandlePhysique).Methods("POST", "OPTIONS").Name("protocol-physique")
	ai.Use(aiMws...)

	p.HandleFunc("/demo", handler.HandleDemo).Methods("POST", "OPTIONS").Name("protocol-demo")
	p.HandleFunc("/today", handler.HandleToday).Methods("GET", "OPTIONS").Name("protocol-today")
	p.HandleFunc("/calendar/{year}/{month}", handler.HandleCalendar).Methods("GET", "OPTIONS").Name("protocol-calendar")
	p.HandleFunc("/workouts/start", handler.HandleStartWorkout).Methods("POST", "OPTIONS").Name("protocol-workout-start")
	p.HandleFunc("/workouts/cancel", handler.HandleCancelWorkout).Methods("POST", "OPTIONS").Name("protocol-workout-cancel")
	p.HandleFunc("/workouts/complete", handler.HandleCompleteWorkout).Methods("POST", "OPTIONS").Name("protocol-workout-complete")
	p.HandleFunc("/workouts/reschedule", handler.HandleReschedule).Methods("POST", "OPTIONS").Name("protocol-workout-reschedule")
	p.HandleFunc("/workouts/{id}/warmup", handler.HandleWarmUp).Methods("GET", "OPTIONS").Name("protocol-workout-warmup")
	p.HandleFunc("/warmup", handler.HandleWarmUp).Methods("POST", "OPTIONS").Name("protocol-warmup")
	p.HandleFunc("/days/{date}/status", handler.HandleDayStatus).Methods("POST", "OPTIONS").Name("protocol-day-status")
	p.HandleFunc("/meals/{id}/toggle", handler.HandleToggleMeal).Methods("POST", "OPTIONS").Name("protocol-meal-toggle")
	p.HandleFunc("/weight", handler.HandleLogWeight).Methods("POST", "OPTIONS").Name("protocol-weight")
	p.HandleFunc("/exercises", handler.HandleAddExercise).Methods("POST", "OPTIONS").Name("protocol-exercise-add")
	p.HandleFunc("/exercises/search", handler.HandleSearchExercises).Methods("GET", "OPTIONS").Name("protocol-exercise-search")
	p.HandleFunc("/routines", handler.HandleSaveRoutine).Methods("POST", "OPTIONS").Name("protocol-routine-save")
	p.HandleFunc("/routines/{id}/activate", handler.HandleActivateRoutine).Methods("POST", "OPTIONS").Name("protocol-routine-activate")
	p.HandleFunc("/analytics", handler.HandleAnalytics).Methods("GET", "OPTIONS").Name("protocol-analytics")
	p.HandleFunc("/daily/refresh", handler.HandleRefreshDaily).Methods("POST", "OPTIONS").Name("protocol-daily-refresh")
	p.HandleFunc("/wearables", handler.HandleTelemetry).Methods("GET", "OPTIONS").Name("protocol-wearables")
	p.HandleFunc("/wearables/{provider}/toggle", handler.HandleToggleWearable).Methods("POST", "OPTIONS").Name("protocol-wearable-toggle")
	p.HandleFunc("/settings", handler.HandleSettings).Methods("PATCH", "OPTIONS").Name("protocol-settings")
}

// SetupPublicRoutes registers the endpoints open without a session.
func (handler *Handler) SetupPublicRoutes(r *mux.Router) {
	r.HandleFunc("/v1/catalog/exercises", handler.HandleCatalog).Methods("GET", "OPTIONS").Name("catalog-exercises")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, analytics.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, state.ErrStateNotFound),
		errors.Is(err, ErrRoutineNotFound),
		errors.Is(err, ErrMealNotFound),
		errors.Is(err, ErrWorkoutNotFound),
		errors.Is(err, ErrNoWorkoutScheduled):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOnboarded), errors.Is(err, ErrDuplicateExercise):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ai.ErrPlanSynthesis), errors.Is(err, ai.ErrEmptyResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail logs the error and answers with the status it maps to. Client errors
// carry the error text, server errors a generic message.
func fail(w http.ResponseWriter, op, userID string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s, user %s: %s", op, userID, err)
		http.Error(w, op+" failed", status)
		return
	}
	log.Debugf("%s, user %s: %s", op, userID, err)
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, b)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		log.Debugf("unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func identityOr401(w http.ResponseWriter, ctx context.Context) (auth.Identity, bool) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
	}
	return identity, ok
}

func (handler *Handler) HandleOnboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.onboard")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var form state.UserProfile
	if !decodeBody(w, r, &form) {
		return
	}
	if form.Email == "" {
		form.Email = identity.Email
	}

	appState, err := handler.service.Onboard(ctx, identity.UserID, form)
	if err != nil {
		span.RecordError(err)
		fail(w, "onboard", identity.UserID, err)
		return
	}
	writeJSON(w, appState)
}

func (handler *Handler) HandleDemo(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.demo")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	appState, err := handler.service.Demo(ctx, identity.UserID)
	if err != nil {
		fail(w, "demo", identity.UserID, err)
		return
	}
	writeJSON(w, appState)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.today")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	view, err := handler.service.Today(ctx, identity.UserID)
	if err != nil {
		fail(w, "today", identity.UserID, err)
		return
	}
	writeJSON(w, view)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.calendar")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	days, err := handler.service.Calendar(ctx, identity.UserID, year, time.Month(month))
	if err != nil {
		fail(w, "calendar", identity.UserID, err)
		return
	}
	writeJSON(w, days)
}

func (handler *Handler) HandleStartWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.startWorkout")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var req StartWorkoutRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	appState, err := handler.service.StartWorkout(ctx, identity.UserID, req.WorkoutID)
	if err != nil {
		fail(w, "start workout", identity.UserID, err)
		return
	}
	writeJSON(w, appState.ActiveWorkout)
}

func (handler *Handler) HandleCancelWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.cancelWorkout")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	if _, err := handler.service.CancelWorkout(ctx, identity.UserID); err != nil {
		fail(w, "cancel workout", identity.UserID, err)
		return
	}
	pkg.WriteJSONResponseOK(w, `{"cancelled":true}`)
}

func (handler *Handler) HandleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.completeWorkout")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var req CompleteWorkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := handler.service.CompleteWorkout(ctx, identity.UserID, req)
	if err != nil {
		span.RecordError(err)
		fail(w, "complete workout", identity.UserID, err)
		return
	}
	writeJSON(w, result)
}

func (handler *Handler) HandleReschedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.reschedule")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var req RescheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	appState, err := handler.service.Reschedule(ctx, identity.UserID, req.MissedDate, req.TargetDate, req.WorkoutID)
	if err != nil {
		fail(w, "reschedule", identity.UserID, err)
		return
	}
	writeJSON(w, appState.RescheduledWorkouts)
}

func (handler *Handler) HandleWarmUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.warmUp")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}

	workoutID := mux.Vars(r)["id"]
	var req WarmUpRequest
	if workoutID == "" && !decodeBody(w, r, &req) {
		return
	}

	sequence, err := handler.service.WarmUp(ctx, identity.UserID, workoutID, req.Exercises)
	if err != nil {
		fail(w, "warm-up", identity.UserID, err)
		return
	}
	writeJSON(w, sequence)
}

func (handler *Handler) HandleDayStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.dayStatus")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var req DayStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date := mux.Vars(r)["date"]
	status, err := handler.service.ToggleDayStatus(ctx, identity.UserID, date, req.Status)
	if err != nil {
		fail(w, "toggle day status", identity.UserID, err)
		return
	}
	writeJSON(w, DayStatusResponse{Date: date, Status: status})
}

func (handler *Handler) HandleToggleMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.toggleMeal")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	appState, err := handler.service.ToggleMeal(ctx, identity.UserID, mux.Vars(r)["id"])
	if err != nil {
		fail(w, "toggle meal", identity.UserID, err)
		return
	}
	writeJSON(w, appState.DailyMeals)
}

func (handler *Handler) HandleRegenerateDiet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.regenerateDiet")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	meals, err := handler.service.RegenerateDiet(ctx, identity.UserID)
	if err != nil {
		span.RecordError(err)
		fail(w, "regenerate diet", identity.UserID, err)
		return
	}
	writeJSON(w, meals)
}

func (handler *Handler) HandleLogWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.logWeight")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var req WeightRequest
	if !decodeBody(w, r, &req) {
		return
	}

	history, err := handler.service.LogWeight(ctx, identity.UserID, req.Weight, req.Date)
	if err != nil {
		fail(w, "log weight", identity.UserID, err)
		return
	}
	writeJSON(w, history)
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.addExercise")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var ex state.ExerciseMetadata
	if !decodeBody(w, r, &ex) {
		return
	}

	added, err := handler.service.AddUserExercise(ctx, identity.UserID, ex)
	if err != nil {
		fail(w, "add exercise", identity.UserID, err)
		return
	}
	writeJSON(w, added)
}

func searchParams(r *http.Request) (string, int, error) {
	query := r.URL.Query().Get("q")
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			return "", 0, errors.New("invalid limit")
		}
		limit = n
	}
	return query, limit, nil
}

func (handler *Handler) HandleSearchExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.searchExercises")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	query, limit, err := searchParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	found, err := handler.service.SearchExercises(ctx, identity.UserID, query, limit)
	if err != nil {
		fail(w, "search exercises", identity.UserID, err)
		return
	}
	writeJSON(w, found)
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.catalog")
	defer span.End()

	query, limit, err := searchParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	found, err := handler.service.SearchExercises(ctx, "", query, limit)
	if err != nil {
		fail(w, "catalog", "", err)
		return
	}
	writeJSON(w, found)
}

func (handler *Handler) HandleSaveRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.saveRoutine")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var routine state.Routine
	if !decodeBody(w, r, &routine) {
		return
	}

	saved, err := handler.service.SaveRoutine(ctx, identity.UserID, routine)
	if err != nil {
		fail(w, "save routine", identity.UserID, err)
		return
	}
	writeJSON(w, saved)
}

func (handler *Handler) HandleActivateRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.activateRoutine")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	appState, err := handler.service.ActivateRoutine(ctx, identity.UserID, mux.Vars(r)["id"])
	if err != nil {
		fail(w, "activate routine", identity.UserID, err)
		return
	}
	writeJSON(w, appState.ActiveRoutine())
}

func (handler *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.analytics")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}

	q := r.URL.Query()
	report, err := handler.service.Analytics(ctx, identity.UserID, analytics.RangeType(q.Get("range")), q.Get("start"), q.Get("end"))
	if err != nil {
		fail(w, "analytics", identity.UserID, err)
		return
	}
	writeJSON(w, report)
}

func (handler *Handler) HandleRefreshDaily(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.refreshDaily")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	metric, err := handler.service.RefreshDaily(ctx, identity.UserID)
	if err != nil {
		fail(w, "refresh daily", identity.UserID, err)
		return
	}
	writeJSON(w, metric)
}

func (handler *Handler) HandleTelemetry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.telemetry")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	status, err := handler.service.Telemetry(ctx, identity.UserID)
	if err != nil {
		fail(w, "telemetry", identity.UserID, err)
		return
	}
	writeJSON(w, status)
}

func (handler *Handler) HandleToggleWearable(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.toggleWearable")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	provider := mux.Vars(r)["provider"]
	connected, err := handler.service.ToggleWearable(ctx, identity.UserID, provider)
	if err != nil {
		fail(w, "toggle wearable", identity.UserID, err)
		return
	}
	writeJSON(w, WearableToggleResponse{Provider: provider, Connected: connected})
}

// HandlePhysique takes the photo as the "image" field of a multipart form.
func (handler *Handler) HandlePhysique(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.physique")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhysiqueBytes+maxBodyBytes)
	if err := r.ParseMultipartForm(maxPhysiqueBytes); err != nil {
		log.Debugf("physique, parse form: %s", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("physique, read image: %s", err)
		http.Error(w, "read image failed", http.StatusBadRequest)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	analysis, err := handler.service.PhysiqueScan(ctx, image, mimeType)
	if err != nil {
		if errors.Is(err, ai.ErrInvalidImage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		span.RecordError(err)
		fail(w, "physique scan", identity.UserID, err)
		return
	}
	// the analysis is markdown, clients that render it can take it as is
	if strings.Contains(r.Header.Get("Accept"), "text/markdown") {
		pkg.WriteResponse(w, pkg.ContentType.Markdown, analysis, http.StatusOK)
		return
	}
	writeJSON(w, PhysiqueResponse{Analysis: analysis})
}

func (handler *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocol.settings")
	defer span.End()

	identity, ok := identityOr401(w, ctx)
	if !ok {
		return
	}
	var settings Settings
	if !decodeBody(w, r, &settings) {
		return
	}
	appState, err := handler.service.UpdateSettings(ctx, identity.UserID, settings)
	if err != nil {
		fail(w, "update settings", identity.UserID, err)
		return
	}
	writeJSON(w, appState)
}
