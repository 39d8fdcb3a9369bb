package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=state_test

// ErrInvalidPayload is returned for a pushed payload that is not an app state object.
var ErrInvalidPayload = errors.New("invalid sync payload")

type stateRepo interface {
	Get(ctx context.Context, userID string) (*StoredState, error)
	Upsert(ctx context.Context, st StoredState) error
	ListDueForReset(ctx context.Context, now time.Time) ([]DueUser, error)
}

// stateCipher is satisfied by *vault.Vault; the owner is the user id.
type stateCipher interface {
	Encrypt(ctx context.Context, owner string, plaintext []byte) (string, error)
	Decrypt(ctx context.Context, owner, envelope string) ([]byte, error)
}

// SaveMeta carries the device side details of a save.
type SaveMeta struct {
	DeviceID string
	ClientTS int64
}

type Service struct {
	repo   stateRepo
	cipher stateCipher

	mutex     sync.Mutex
	userLocks map[string]*sync.Mutex

	// injectable for tests
	Now func() time.Time
}

func NewService(repo stateRepo, cipher stateCipher) *Service {
	return &Service{
		repo:      repo,
		cipher:    cipher,
		userLocks: make(map[string]*sync.Mutex),
		Now:       time.Now,
	}
}

func (s *Service) lockFor(userID string) *sync.Mutex {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// Load returns the decrypted state of the user with the daily reset applied.
// A blob that cannot be decrypted or decoded is an error, never a fresh state.
func (s *Service) Load(ctx context.Context, userID string) (_ *AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.state.load")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	st, _, err := s.load(ctx, userID)
	return st, err
}

func (s *Service) load(ctx context.Context, userID string) (*AppState, *StoredState, error) {
	stored, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := s.cipher.Decrypt(ctx, userID, stored.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("decrypt state: %w", err)
	}

	appState := &AppState{}
	if err := json.Unmarshal(plaintext, appState); err != nil {
		return nil, nil, fmt.Errorf("decode state: %w", err)
	}
	appState.Normalize()

	ApplyDailyReset(appState, LocalDate(s.Now(), appState.Timezone()))

	return appState, stored, nil
}

// Save encrypts and stores the state; the stored copy follows the remember-me rule.
func (s *Service) Save(ctx context.Context, userID string, appState *AppState, meta SaveMeta) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.state.save")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.save(ctx, userID, appState, meta)
}

func (s *Service) save(ctx context.Context, userID string, appState *AppState, meta SaveMeta) error {
	if appState == nil {
		return errors.New("nil state")
	}

	plaintext, err := json.Marshal(appState.ForStorage())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	envelope, err := s.cipher.Encrypt(ctx, userID, plaintext)
	if err != nil {
		return fmt.Errorf("encrypt state: %w", err)
	}

	timezone := appState.Timezone()
	if timezone != "" && !ValidTimezone(timezone) {
		log.Warnf("state service, user %s, unknown timezone %q stored as UTC", userID, timezone)
		timezone = ""
	}

	stored := StoredState{
		UserID:   userID,
		Payload:  envelope,
		DeviceID: meta.DeviceID,
		Timezone: timezone,
		ClientTS: meta.ClientTS,
	}
	if appState.LastResetDate != nil {
		if d, err := ParseDate(*appState.LastResetDate); err == nil {
			stored.LastResetDate = &d
		} else {
			log.Warnf("state service, user %s, bad last reset date %q: %s", userID, *appState.LastResetDate, err)
		}
	}

	return s.repo.Upsert(ctx, stored)
}

// Update runs mutate over the stored state and saves the result. Mutations of
// one user's state are serialized.
func (s *Service) Update(ctx context.Context, userID string, mutate func(*AppState) error) (_ *AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.state.update")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("user", userID))

	return s.update(ctx, userID, mutate, false)
}

// UpdateOrInit is Update starting from the default state when the user has none yet.
func (s *Service) UpdateOrInit(ctx context.Context, userID string, mutate func(*AppState) error) (_ *AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.state.updateOrInit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.update(ctx, userID, mutate, true)
}

func (s *Service) update(ctx context.Context, userID string, mutate func(*AppState) error, initMissing bool) (*AppState, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	appState, stored, err := s.load(ctx, userID)
	switch {
	case err == nil:
	case initMissing && errors.Is(err, ErrStateNotFound):
		appState = DefaultState()
		stored = &StoredState{UserID: userID}
	default:
		return nil, err
	}

	if err := mutate(appState); err != nil {
		return nil, err
	}

	meta := SaveMeta{DeviceID: stored.DeviceID, ClientTS: stored.ClientTS}
	if err := s.save(ctx, userID, appState, meta); err != nil {
		return nil, err
	}
	return appState, nil
}

// Sync stores a state pushed by a device as is.
func (s *Service) Sync(ctx context.Context, userID, deviceID string, payload SyncPayload) (_ *AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.state.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw := bytes.TrimSpace(payload.Payload)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}

	appState := &AppState{}
	if err := json.Unmarshal(raw, appState); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err)
	}
	appState.Normalize()

	if err := s.Save(ctx, userID, appState, SaveMeta{DeviceID: deviceID, ClientTS: payload.Timestamp}); err != nil {
		return nil, err
	}
	return appState, nil
}

// ResetDue applies the daily reset to every user past their local midnight.
// Returns the number of states that were reset.
func (s *Service) ResetDue(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.state.resetDue")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	due, err := s.repo.ListDueForReset(ctx, s.Now())
	if err != nil {
		return 0, fmt.Errorf("list due users: %w", err)
	}

	reset := 0
	for _, u := range due {
		// the reset itself happens on load
		if _, err := s.Update(ctx, u.UserID, func(*AppState) error { return nil }); err != nil {
			log.Errorf("state service, reset user %s: %s", u.UserID, err)
			continue
		}
		reset++
	}

	span.SetAttributes(attribute.Int("reset", reset))
	return reset, nil
}
