package events

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=events_test

type eventsRepo interface {
	Add(ctx context.Context, event Event) (*Event, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
	Count(ctx context.Context, params EventParams) (int, error)
}

type Service struct {
	repo eventsRepo
}

func NewService(repo eventsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) add(ctx context.Context, spanName string, event Event) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, spanName)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !event.Type.IsValid() {
		return 0, fmt.Errorf("invalid event type: %q", event.Type)
	}

	added, err := s.repo.Add(ctx, event)
	if err != nil {
		return 0, fmt.Errorf("add %s event: %w", event.Type, err)
	}
	return added.ID, nil
}

func (s *Service) AddTrainingFinish(ctx context.Context, userID string, tf TrainingFinish) (int, error) {
	return s.add(ctx, "service.gymstats.events.add.trainingfinish", NewTrainingFinishEvent(userID, tf))
}

func (s *Service) AddWeightReport(ctx context.Context, userID string, wr WeightReport) (int, error) {
	return s.add(ctx, "service.gymstats.events.add.weightreport", NewWeightReportEvent(userID, wr))
}

func (s *Service) AddWorkoutRescheduled(ctx context.Context, userID string, wr WorkoutRescheduled) (int, error) {
	return s.add(ctx, "service.gymstats.events.add.rescheduled", NewWorkoutRescheduledEvent(userID, wr))
}

func (s *Service) AddDayStatusChange(ctx context.Context, userID string, dsc DayStatusChange) (int, error) {
	return s.add(ctx, "service.gymstats.events.add.daystatus", NewDayStatusChangeEvent(userID, dsc))
}

func (s *Service) AddPlanSynthesized(ctx context.Context, userID string, ps PlanSynthesized) (int, error) {
	return s.add(ctx, "service.gymstats.events.add.plansynthesized", NewPlanSynthesizedEvent(userID, ps))
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []*Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.events.list")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Service) Count(ctx context.Context, params EventParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.events.count")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	count, err := s.repo.Count(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
