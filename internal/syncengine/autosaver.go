package syncengine

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/state"
)

const DefaultDebounce = 1500 * time.Millisecond

type saver interface {
	SaveState(ctx context.Context, appState *state.AppState) (bool, error)
}

// AutoSaver debounces saves: only the last state of a burst gets written.
type AutoSaver struct {
	saver    saver
	debounce time.Duration

	mutex   sync.Mutex
	pending *state.AppState
	timer   *time.Timer
	closed  bool
	// serializes the actual writes
	saveMutex sync.Mutex
}

func NewAutoSaver(saver saver, debounce time.Duration) *AutoSaver {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &AutoSaver{
		saver:    saver,
		debounce: debounce,
	}
}

// Schedule replaces the pending state and restarts the debounce timer.
func (a *AutoSaver) Schedule(appState *state.AppState) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.closed {
		return
	}

	a.pending = appState
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, func() {
		a.Flush(context.Background())
	})
}

// Flush saves the pending state right away, if there is one.
func (a *AutoSaver) Flush(ctx context.Context) {
	a.mutex.Lock()
	pending := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mutex.Unlock()

	if pending == nil {
		return
	}

	a.saveMutex.Lock()
	defer a.saveMutex.Unlock()
	if _, err := a.saver.SaveState(ctx, pending); err != nil {
		log.Errorf("auto saver, save state: %s", err)
	}
}

// Close flushes and stops accepting new states.
func (a *AutoSaver) Close(ctx context.Context) {
	a.mutex.Lock()
	a.closed = true
	a.mutex.Unlock()

	a.Flush(ctx)
}
