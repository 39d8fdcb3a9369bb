package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/auth"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

// timezoneSource resolves the user's zone so history days match their calendar.
type timezoneSource interface {
	Load(ctx context.Context, userID string) (*state.AppState, error)
}

type DeleteSetResponse struct {
	DeletedID int `json:"deletedId"`
}

type ListResponse struct {
	Sets  []Set `json:"sets"`
	Total int   `json:"total"`
}

type Handler struct {
	repo     setsRepo
	states   timezoneSource
	analyzer *Analyzer
}

func NewHandler(repo setsRepo, states timezoneSource) *Handler {
	return &Handler{
		repo:     repo,
		states:   states,
		analyzer: NewAnalyzer(repo),
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/v1/exercises/log/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS").Name("exercises-list")
	r.HandleFunc("/v1/exercises/log/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("exercises-delete")
	r.HandleFunc("/v1/exercises/history", handler.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("exercises-history")
	r.HandleFunc("/v1/exercises/percentages", handler.HandlePercentages).Methods("GET", "OPTIONS").Name("exercises-percentages")
}

func (handler *Handler) timezone(ctx context.Context, userID string) string {
	if handler.states == nil {
		return ""
	}
	appState, err := handler.states.Load(ctx, userID)
	if err != nil {
		log.Debugf("exercise history, user %s, no state for timezone: %s", userID, err)
		return ""
	}
	return appState.Timezone()
}

func parseFrom(r *http.Request) (*time.Time, error) {
	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		return nil, nil
	}
	from, err := state.ParseDate(fromStr)
	if err != nil {
		return nil, err
	}
	return &from, nil
}

func (handler *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.history")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	name := r.URL.Query().Get("exercise")
	if name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}
	from, err := parseFrom(r)
	if err != nil {
		http.Error(w, "error, invalid from date", http.StatusBadRequest)
		return
	}

	exHistory, err := handler.analyzer.ExerciseHistory(ctx, SetParams{
		UserID:       identity.UserID,
		ExerciseName: name,
		From:         from,
	}, handler.timezone(ctx, identity.UserID))
	if err != nil {
		log.Errorf("failed to get exercise history [%s], user %s: %s", name, identity.UserID, err)
		http.Error(w, "failed to get exercise history", http.StatusInternalServerError)
		return
	}

	exHistoryJson, err := json.Marshal(exHistory)
	if err != nil {
		log.Errorf("failed to marshal exercise history: %s", err)
		http.Error(w, "failed to marshal exercise history", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exHistoryJson, http.StatusOK)
}

// HandlePercentages returns per exercise shares when muscleGroup is set, per muscle group shares otherwise.
func (handler *Handler) HandlePercentages(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.percentages")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, err := parseFrom(r)
	if err != nil {
		http.Error(w, "error, invalid from date", http.StatusBadRequest)
		return
	}

	var result any
	if mg := r.URL.Query().Get("muscleGroup"); mg != "" {
		result, err = handler.analyzer.ExercisePercentages(ctx, identity.UserID, mg, from)
	} else {
		result, err = handler.analyzer.MuscleGroupPercentages(ctx, identity.UserID, from)
	}
	if err != nil {
		log.Errorf("failed to get exercise percentages, user %s: %s", identity.UserID, err)
		http.Error(w, "failed to get percentages", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal percentages: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.delete")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, identity.UserID, id); err != nil {
		if errors.Is(err, ErrSetNotFound) {
			http.Error(w, "set not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete set %d: %s", id, err)
		http.Error(w, "set not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteSetResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.list")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle list sets, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle list sets, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	sets, total, err := handler.repo.List(ctx, ListParams{
		SetParams: SetParams{
			UserID:       identity.UserID,
			ExerciseName: r.URL.Query().Get("exercise"),
			MuscleGroup:  r.URL.Query().Get("muscleGroup"),
		},
		Page: page,
		Size: size,
	})
	if err != nil {
		log.Errorf("failed to list sets, user %s: %s", identity.UserID, err)
		http.Error(w, "failed to get sets", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListResponse{Sets: sets, Total: total})
	if err != nil {
		log.Errorf("failed to marshal sets: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listJson, http.StatusOK)
}
