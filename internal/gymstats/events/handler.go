package events

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
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=events_test

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

type eventsService interface {
	List(ctx context.Context, params ListParams) ([]*Event, error)
	Count(ctx context.Context, params EventParams) (int, error)
}

type ListResponse struct {
	Events []*Event `json:"events"`
	Total  int      `json:"total"`
	Page   int      `json:"page"`
	Size   int      `json:"size"`
}

type Handler struct {
	service eventsService
}

func NewHandler(service eventsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/v1/events", h.HandleList).Methods("GET", "OPTIONS").Name("events-list")
}

// HandleList query params: type, from, to (YYYY-MM-DD), page, size.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.events.list")
	defer span.End()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		log.Errorf("list events, user %s: %s", identity.UserID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params.UserID = identity.UserID

	events, err := h.service.List(ctx, params)
	if err != nil {
		span.RecordError(err)
		log.Errorf("list events, user %s: %s", identity.UserID, err)
		http.Error(w, "failed to list events", http.StatusInternalServerError)
		return
	}

	total, err := h.service.Count(ctx, params.EventParams)
	if err != nil {
		span.RecordError(err)
		log.Errorf("count events, user %s: %s", identity.UserID, err)
		http.Error(w, "failed to list events", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(ListResponse{
		Events: events,
		Total:  total,
		Page:   params.Page,
		Size:   params.Size,
	})
	if err != nil {
		log.Errorf("marshal events: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func parseListParams(r *http.Request) (ListParams, error) {
	q := r.URL.Query()
	params := ListParams{Page: 0, Size: defaultPageSize}

	if t := q.Get("type"); t != "" {
		et := EventType(t)
		if !et.IsValid() {
			return params, errors.New("invalid event type")
		}
		params.Type = &et
	}

	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return params, errors.New("invalid from date")
		}
		params.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return params, errors.New("invalid to date")
		}
		// inclusive day
		t = t.Add(24*time.Hour - time.Nanosecond)
		params.To = &t
	}

	if page := q.Get("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 0 {
			return params, errors.New("invalid page")
		}
		params.Page = p
	}
	if size := q.Get("size"); size != "" {
		s, err := strconv.Atoi(size)
		if err != nil || s <= 0 {
			return params, errors.New("invalid size")
		}
		params.Size = min(s, maxPageSize)
	}

	return params, nil
}
