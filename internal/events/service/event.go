package service

import (
	"context"
	"errors"
	"time"

	"condohub/internal/events/repository"
	"condohub/internal/events/validator"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/store"
)

const (
	MsgInvalidEvent  = "Dados do evento inválidos."
	MsgEventNotFound = "Evento não encontrado ou sem dados."
)

type EventService interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Get(ctx context.Context, condominiumID, id string) (*model.Event, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Event, error)
	Update(ctx context.Context, condominiumID, id string, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, condominiumID, id string) error
}

type eventService struct {
	repo      repository.EventRepository
	validator *validator.EventValidator
	clock     clock.Clock
	log       *logger.Logger
}

func NewEventService(
	repo repository.EventRepository,
	eventValidator *validator.EventValidator,
	clk clock.Clock,
	log *logger.Logger,
) EventService {
	return &eventService{
		repo:      repo,
		validator: eventValidator,
		clock:     clk,
		log:       log,
	}
}

func (s *eventService) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if details, err := s.validator.Validate(event); err != nil {
		s.log.Warn("Event validation failed", "date", event.Date, "error", err)
		return nil, apperrors.Validation(MsgInvalidEvent, details)
	}

	now := s.clock.Now().UTC().Format(time.RFC3339)
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := s.repo.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event", "date", event.Date, "error", err)
		return nil, apperrors.Internal("Falha ao criar o evento.", err)
	}

	s.log.Info("Event created",
		"event_id", event.ID,
		"date", event.Date,
		"status", event.Status,
		"type", event.Type,
	)
	return event, nil
}

func (s *eventService) Get(ctx context.Context, condominiumID, id string) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(MsgEventNotFound)
		}
		return nil, apperrors.Internal("Falha ao consultar o evento.", err)
	}
	if event.CondominiumID != condominiumID {
		return nil, apperrors.NotFound(MsgEventNotFound)
	}
	return event, nil
}

func (s *eventService) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Event, error) {
	events, err := s.repo.ListByCondominium(ctx, condominiumID)
	if err != nil {
		return nil, apperrors.Internal("Falha ao listar os eventos.", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// Update replaces the mutable fields wholesale. Events are small and the
// cross-field rules make partial patches error prone, so the caller sends
// the full shape back.
func (s *eventService) Update(ctx context.Context, condominiumID, id string, event *model.Event) (*model.Event, error) {
	existing, err := s.Get(ctx, condominiumID, id)
	if err != nil {
		return nil, err
	}

	event.CondominiumID = existing.CondominiumID
	if details, err := s.validator.Validate(event); err != nil {
		s.log.Warn("Event update validation failed", "event_id", id, "error", err)
		return nil, apperrors.Validation(MsgInvalidEvent, details)
	}

	partial := store.Record{
		"resource_ids": event.ResourceIDs,
		"type":         string(event.Type),
		"status":       string(event.Status),
		"date":         event.Date,
		"start_time":   event.StartTime,
		"end_time":     event.EndTime,
		"updated_at":   s.clock.Now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.Update(ctx, id, partial); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(MsgEventNotFound)
		}
		return nil, apperrors.Internal("Falha ao atualizar o evento.", err)
	}

	return s.Get(ctx, condominiumID, id)
}

func (s *eventService) Delete(ctx context.Context, condominiumID, id string) error {
	if _, err := s.Get(ctx, condominiumID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(MsgEventNotFound)
		}
		return apperrors.Internal("Falha ao excluir o evento.", err)
	}

	s.log.Info("Event deleted", "event_id", id)
	return nil
}
