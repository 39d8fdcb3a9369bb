package ai

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/2beens/aresprotocol/internal/telemetry/metrics"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

const DefaultRequestTimeout = 2 * time.Minute

type Service struct {
	provider       Provider
	limiter        *rate.Limiter
	timeout        time.Duration
	metricsManager *metrics.Manager

	// model used for plan synthesis, the provider default when empty
	PlanModel string
}

// NewService throttles outgoing calls to requestsPerSecond and bounds each call by timeout.
func NewService(provider Provider, requestsPerSecond float64, timeout time.Duration, metricsManager *metrics.Manager) *Service {
	limit := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
		burst = max(1, int(requestsPerSecond))
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Service{
		provider:       provider,
		limiter:        rate.NewLimiter(limit, burst),
		timeout:        timeout,
		metricsManager: metricsManager,
	}
}

func (s *Service) ProviderName() string {
	return s.provider.Name()
}

func (s *Service) observe(outcome string, took time.Duration) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterAIRequests.WithLabelValues(s.provider.Name(), outcome).Inc()
	s.metricsManager.HistAIRequestDuration.WithLabelValues(s.provider.Name()).Observe(took.Seconds())
}

func (s *Service) generate(ctx context.Context, op string, req Request) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.ai."+op)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("provider", s.provider.Name()))

	if err := s.limiter.Wait(ctx); err != nil {
		s.observe("throttled", 0)
		return "", fmt.Errorf("wait for ai rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.provider.Generate(ctx, req)
	took := time.Since(start)
	if err != nil {
		s.observe("error", took)
		log.Errorf("ai %s via %s failed after %s: %s", op, s.provider.Name(), took, err)
		return "", err
	}

	s.observe("ok", took)
	log.Debugf("ai %s via %s took %s", op, s.provider.Name(), took)
	return text, nil
}
