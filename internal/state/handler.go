package state

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/auth"
	"github.com/2beens/aresprotocol/internal/telemetry/metrics"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=state_test

type stateService interface {
	Load(ctx context.Context, userID string) (*AppState, error)
	Sync(ctx context.Context, userID, deviceID string, payload SyncPayload) (*AppState, error)
}

const maxSyncBodyBytes = 8 << 20

type SyncResponse struct {
	Stored    bool  `json:"stored"`
	Timestamp int64 `json:"timestamp"`
}

type Handler struct {
	service        stateService
	metricsManager *metrics.Manager
}

func NewHandler(service stateService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/v1/sync", h.HandleSync).Methods("POST", "OPTIONS").Name("sync")
	r.HandleFunc("/v1/state", h.HandleGet).Methods("GET", "OPTIONS").Name("state-get")
}

func (h *Handler) countSync(result string) {
	if h.metricsManager != nil {
		h.metricsManager.CounterStateSyncs.WithLabelValues(result).Inc()
	}
}

func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.state.sync")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		h.countSync("bad_request")
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var payload SyncPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSyncBodyBytes)).Decode(&payload); err != nil {
		log.Errorf("sync, unmarshal json params: %s", err)
		h.countSync("bad_request")
		http.Error(w, "sync failed", http.StatusBadRequest)
		return
	}

	if !strings.EqualFold(strings.TrimSpace(payload.Email), identity.Email) {
		log.Warnf("sync, user %s pushed state for another email", identity.UserID)
		h.countSync("email_mismatch")
		http.Error(w, "email does not match the session", http.StatusBadRequest)
		return
	}

	deviceID := r.Header.Get("X-Device-ID")
	if _, err := h.service.Sync(ctx, identity.UserID, deviceID, payload); err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			log.Debugf("sync, user %s: %s", identity.UserID, err)
			h.countSync("bad_request")
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		span.RecordError(err)
		log.Errorf("sync, user %s: %s", identity.UserID, err)
		h.countSync("error")
		http.Error(w, "sync failed", http.StatusInternalServerError)
		return
	}

	h.countSync("stored")
	respBytes, err := json.Marshal(SyncResponse{Stored: true, Timestamp: payload.Timestamp})
	if err != nil {
		log.Errorf("marshal sync response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.state.get")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	appState, err := h.service.Load(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			http.Error(w, "state not found", http.StatusNotFound)
			return
		}
		span.RecordError(err)
		log.Errorf("get state, user %s: %s", identity.UserID, err)
		http.Error(w, "failed to load state", http.StatusInternalServerError)
		return
	}

	stateBytes, err := json.Marshal(appState)
	if err != nil {
		log.Errorf("marshal state: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, stateBytes)
}
