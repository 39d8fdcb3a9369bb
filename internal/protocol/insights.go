package protocol

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/gymstats/analytics"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/internal/wearable"
)

// Analytics builds the report of the given range.
func (s *Service) Analytics(ctx context.Context, userID string, rangeType analytics.RangeType, start, end string) (_ *analytics.Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.analytics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("range", string(rangeType)))

	appState, err := s.states.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.today(appState)
	w, err := analytics.NewWindow(rangeType, today, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	report := analytics.Build(appState, w, today, s.resolver(appState.UserExercises))
	return &report, nil
}

// RefreshDaily recomputes and stores today's metric.
func (s *Service) RefreshDaily(ctx context.Context, userID string) (_ *state.DailyMetric, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.refreshDaily")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var metric state.DailyMetric
	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		metric = s.daily.Refresh(ctx, userID, appState)
		return nil
	}); err != nil {
		return nil, err
	}
	return &metric, nil
}

// ToggleWearable connects or disconnects a provider. Returns whether it is connected now.
func (s *Service) ToggleWearable(ctx context.Context, userID, providerID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.toggleWearable")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("provider", providerID))

	var connected bool
	if _, err := s.states.Update(ctx, userID, func(appState *state.AppState) error {
		c, err := s.wearables.Toggle(appState, providerID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		connected = c
		return nil
	}); err != nil {
		return false, err
	}
	return connected, nil
}

type WearableStatus struct {
	Providers []string                        `json:"providers"`
	Connected []string                        `json:"connected"`
	Readings  map[string]*wearable.Telemetry `json:"readings"`
}

// Telemetry returns the latest readings of every connected wearable.
func (s *Service) Telemetry(ctx context.Context, userID string) (*WearableStatus, error) {
	appState, err := s.states.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &WearableStatus{
		Providers: s.wearables.Providers(),
		Connected: slices.Clone(appState.ConnectedWearables),
		Readings:  make(map[string]*wearable.Telemetry, len(appState.ConnectedWearables)),
	}
	for _, id := range appState.ConnectedWearables {
		t, err := s.wearables.Fetch(ctx, userID, id)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", id, err)
		}
		if t != nil {
			status.Readings[id] = t
		}
	}
	return status, nil
}

// PhysiqueScan runs the image through the physique analysis.
func (s *Service) PhysiqueScan(ctx context.Context, image []byte, mimeType string) (string, error) {
	return s.planner.AnalyzePhysique(ctx, image, mimeType)
}

// Settings are the user preferences that can change after onboarding.
// Nil fields are left as they are.
type Settings struct {
	Theme             *state.Theme   `json:"theme,omitempty"`
	Persona           *state.Persona `json:"persona,omitempty"`
	RestTimerDuration *int           `json:"restTimerDuration,omitempty"`
	PinnedMetrics     []string       `json:"pinnedMetrics,omitempty"`
	Timezone          *string        `json:"timezone,omitempty"`
	RememberMe        *bool          `json:"rememberMe,omitempty"`
}

func (s *Service) UpdateSettings(ctx context.Context, userID string, settings Settings) (_ *state.AppState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.protocol.updateSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	switch {
	case settings.Theme != nil && !settings.Theme.IsValid():
		return nil, fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, *settings.Theme)
	case settings.Persona != nil && !settings.Persona.IsValid():
		return nil, fmt.Errorf("%w: unknown persona %q", ErrInvalidInput, *settings.Persona)
	case settings.RestTimerDuration != nil && *settings.RestTimerDuration <= 0:
		return nil, fmt.Errorf("%w: rest timer must be positive", ErrInvalidInput)
	case settings.Timezone != nil && *settings.Timezone != "" && !state.ValidTimezone(*settings.Timezone):
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *settings.Timezone)
	}

	return s.states.Update(ctx, userID, func(appState *state.AppState) error {
		if err := requireOnboarded(appState); err != nil {
			return err
		}
		if settings.Theme != nil {
			appState.Theme = *settings.Theme
		}
		if settings.Persona != nil {
			p := *settings.Persona
			appState.Persona = &p
			appState.Profile.Persona = p
		}
		if settings.RestTimerDuration != nil {
			appState.Profile.RestTimerDuration = *settings.RestTimerDuration
		}
		if settings.PinnedMetrics != nil {
			appState.PinnedMetrics = settings.PinnedMetrics
		}
		if settings.Timezone != nil {
			appState.Profile.Timezone = *settings.Timezone
		}
		if settings.RememberMe != nil {
			appState.RememberMe = *settings.RememberMe
		}
		return nil
	})
}
