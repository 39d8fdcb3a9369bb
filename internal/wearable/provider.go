package wearable

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"
)

var ErrUnknownProvider = errors.New("unknown wearable provider")

// Telemetry is a biometric reading pulled from a wearable.
type Telemetry struct {
	HRV          float64   `json:"hrv"` // ms
	RHR          float64   `json:"rhr"` // bpm
	Readiness    float64   `json:"readiness"`
	SleepHours   float64   `json:"sleepHours"`
	DeepSleepMin float64   `json:"deepSleepMin"`
	Timestamp    time.Time `json:"timestamp"`
}

type Provider interface {
	ID() string
	Fetch(ctx context.Context) (*Telemetry, error)
}

// mockProvider returns fixed readings; jitter adds a random offset to HRV and RHR.
type mockProvider struct {
	id        string
	base      Telemetry
	hrvJitter int
	rhrJitter int
	now       func() time.Time
}

func (p *mockProvider) ID() string {
	return p.id
}

func (p *mockProvider) Fetch(_ context.Context) (*Telemetry, error) {
	t := p.base
	if p.hrvJitter > 0 {
		t.HRV += float64(rand.IntN(p.hrvJitter))
	}
	if p.rhrJitter > 0 {
		t.RHR += float64(rand.IntN(p.rhrJitter))
	}
	t.Timestamp = p.now()
	return &t, nil
}

// DefaultProviders are stand-ins for the native health bridges.
func DefaultProviders() []Provider {
	now := time.Now
	return []Provider{
		&mockProvider{
			id:        "apple",
			base:      Telemetry{HRV: 68, RHR: 52, Readiness: 88, SleepHours: 7.5, DeepSleepMin: 110},
			hrvJitter: 10,
			rhrJitter: 5,
			now:       now,
		},
		&mockProvider{id: "garmin", base: Telemetry{HRV: 72, RHR: 54, Readiness: 91, SleepHours: 8.1, DeepSleepMin: 135}, now: now},
		&mockProvider{id: "whoop", base: Telemetry{HRV: 85, RHR: 50, Readiness: 96, SleepHours: 7.2, DeepSleepMin: 95}, now: now},
		&mockProvider{id: "oura", base: Telemetry{HRV: 70, RHR: 53, Readiness: 84, SleepHours: 7.9, DeepSleepMin: 120}, now: now},
		&mockProvider{id: "ultrahuman", base: Telemetry{HRV: 75, RHR: 51, Readiness: 92, SleepHours: 7.6, DeepSleepMin: 105}, now: now},
	}
}

type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.ID()] = p
	}
	return r
}

func (r *Registry) Get(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
