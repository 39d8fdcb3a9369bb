// Package syncengine is the device side of state persistence: the encrypted
// local copy of the state, pushes to the sync endpoint and the pending marker
// left behind when a push could not happen.
package syncengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/aresprotocol/internal/localstore"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/internal/vault"
)

const (
	StorageKey      = "ares_protocol_v4"
	SyncQueueKey    = "ares_sync_queue"
	SessionTokenKey = "ares_session_token"

	DefaultBackendURL = "https://api.ares.protocol/v1/sync"
	DeviceID          = "native-mobile-v1"
	devToken          = "local-dev-token"

	// the device has a single vault key
	deviceOwner = "device"
)

type Config struct {
	BackendURL string
	HTTPClient *http.Client
	// Online reports connectivity; nil means always online.
	Online func() bool
	Now    func() time.Time
}

type Engine struct {
	storage    localstore.Storage
	vault      *vault.Vault
	backendURL string
	httpClient *http.Client
	online     func() bool
	now        func() time.Time
}

func New(storage localstore.Storage, cfg Config) *Engine {
	e := &Engine{
		storage:    storage,
		vault:      vault.New(vault.NewLocalKeyStore(storage)),
		backendURL: cfg.BackendURL,
		httpClient: cfg.HTTPClient,
		online:     cfg.Online,
		now:        cfg.Now,
	}
	if e.backendURL == "" {
		e.backendURL = DefaultBackendURL
	}
	if e.httpClient == nil {
		e.httpClient = &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if e.online == nil {
		e.online = func() bool { return true }
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// LoadState returns nil when nothing is stored. A copy that cannot be
// decrypted or decoded is logged and reported as nil too.
func (e *Engine) LoadState(ctx context.Context) (*state.AppState, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncengine.load")
	defer span.End()

	encrypted, err := e.storage.GetItem(StorageKey)
	if err != nil {
		if errors.Is(err, localstore.ErrItemNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read local state: %w", err)
	}

	plaintext, err := e.vault.Decrypt(ctx, deviceOwner, encrypted)
	if err != nil {
		log.Errorf("sync engine, load failed: %s", err)
		return nil, nil
	}

	appState := &state.AppState{}
	if err := json.Unmarshal(plaintext, appState); err != nil {
		log.Errorf("sync engine, load failed, decode: %s", err)
		return nil, nil
	}
	appState.Normalize()
	return appState, nil
}

// SaveState stores the encrypted state locally and pushes it to the cloud when
// online. Returns whether the cloud push happened.
func (e *Engine) SaveState(ctx context.Context, appState *state.AppState) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncengine.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plaintext, err := json.Marshal(appState.ForStorage())
	if err != nil {
		return false, fmt.Errorf("encode state: %w", err)
	}

	encrypted, err := e.vault.Encrypt(ctx, deviceOwner, plaintext)
	if err != nil {
		return false, fmt.Errorf("encrypt state: %w", err)
	}

	if err := e.storage.SetItem(StorageKey, encrypted); err != nil {
		return false, fmt.Errorf("store state: %w", err)
	}

	if !e.online() {
		e.markPending()
		return false, nil
	}
	return e.PushToCloud(ctx, appState), nil
}

// PushToCloud sends the state to the sync endpoint. Skipped unless the state is
// authenticated and carries a profile email.
func (e *Engine) PushToCloud(ctx context.Context, appState *state.AppState) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncengine.push")
	defer span.End()

	if !appState.IsAuthenticated || appState.Profile == nil || appState.Profile.Email == "" {
		return false
	}

	payload, err := json.Marshal(appState)
	if err != nil {
		log.Errorf("sync engine, encode push payload: %s", err)
		return false
	}
	body, err := json.Marshal(state.SyncPayload{
		Email:     appState.Profile.Email,
		Timestamp: e.now().UnixMilli(),
		Payload:   payload,
	})
	if err != nil {
		log.Errorf("sync engine, encode push body: %s", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.backendURL, bytes.NewReader(body))
	if err != nil {
		log.Errorf("sync engine, new push request: %s", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.sessionToken())
	req.Header.Set("X-Device-ID", DeviceID)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		log.Warnf("sync engine, push failed, queued: %s", err)
		e.markPending()
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("sync engine, push rejected: %s", resp.Status)
		return false
	}

	if err := e.storage.RemoveItem(SyncQueueKey); err != nil {
		log.Errorf("sync engine, clear sync queue: %s", err)
	}
	log.Debugln("sync engine, cloud handshake successful")
	return true
}

func (e *Engine) sessionToken() string {
	token, err := e.storage.GetItem(SessionTokenKey)
	if err != nil || token == "" {
		return devToken
	}
	return token
}

func (e *Engine) SetSessionToken(token string) error {
	return e.storage.SetItem(SessionTokenKey, token)
}

func (e *Engine) markPending() {
	marker, err := json.Marshal(state.SyncMarker{Pending: true, Timestamp: e.now().UnixMilli()})
	if err != nil {
		log.Errorf("sync engine, encode sync marker: %s", err)
		return
	}
	if err := e.storage.SetItem(SyncQueueKey, string(marker)); err != nil {
		log.Errorf("sync engine, write sync marker: %s", err)
	}
}

// Pending returns the queue marker, nil when nothing waits for a push.
func (e *Engine) Pending() (*state.SyncMarker, error) {
	raw, err := e.storage.GetItem(SyncQueueKey)
	if err != nil {
		if errors.Is(err, localstore.ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}
	marker := &state.SyncMarker{}
	if err := json.Unmarshal([]byte(raw), marker); err != nil {
		return nil, fmt.Errorf("decode sync marker: %w", err)
	}
	return marker, nil
}

// Logout wipes every local item, the vault key included.
func (e *Engine) Logout() error {
	e.vault.Forget(deviceOwner)
	return e.storage.Clear()
}
