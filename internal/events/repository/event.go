package repository

import (
	"context"
	"errors"
	"fmt"

	"condohub/pkg/model"
	"condohub/pkg/store"
)

const TableName = "events"

var ErrNotFound = errors.New("event not found")

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (string, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Event, error)
	// ForResourceOnDate returns every event of the condominium touching the
	// resource on the given date, in store order. The override resolver
	// depends on receiving them unreordered.
	ForResourceOnDate(ctx context.Context, condominiumID, resourceID, date string) ([]model.Event, error)
	Update(ctx context.Context, id string, partial store.Record) error
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	store store.Store
}

func NewEventRepository(st store.Store) EventRepository {
	return &eventRepository{store: st}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) (string, error) {
	rec, err := store.ToRecord(event)
	if err != nil {
		return "", fmt.Errorf("failed to encode event: %w", err)
	}

	id, err := r.store.Create(ctx, TableName, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	event.ID = id
	return id, nil
}

func (r *eventRepository) Get(ctx context.Context, id string) (*model.Event, error) {
	rec, err := r.store.ReadOne(ctx, TableName, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read event %s: %w", id, err)
	}

	var event model.Event
	if err := store.Decode(rec, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", id, err)
	}
	return &event, nil
}

func (r *eventRepository) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Event, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("condominium_id", condominiumID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return store.DecodeAll[model.Event](records)
}

func (r *eventRepository) ForResourceOnDate(ctx context.Context, condominiumID, resourceID, date string) ([]model.Event, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("condominium_id", condominiumID),
		store.Where("resource_ids", store.OpArrayContains, resourceID),
		store.Eq("date", date),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load events for date %s: %w", date, err)
	}
	return store.DecodeAll[model.Event](records)
}

func (r *eventRepository) Update(ctx context.Context, id string, partial store.Record) error {
	if err := r.store.Update(ctx, TableName, id, partial); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, TableName, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}
