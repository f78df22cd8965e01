package repository

import (
	"context"
	"fmt"

	"condohub/pkg/model"
	"condohub/pkg/store"
)

const TableName = "bookings"

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (string, error)
	// ActiveForResource returns the resource's bookings dated today or
	// later, scoped to the condominium.
	ActiveForResource(ctx context.Context, condominiumID, resourceID, fromDate string) ([]model.Booking, error)
	ForResourceOnDate(ctx context.Context, condominiumID, resourceID, date string) ([]model.Booking, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Booking, error)
}

type bookingRepository struct {
	store store.Store
}

func NewBookingRepository(st store.Store) BookingRepository {
	return &bookingRepository{store: st}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) (string, error) {
	rec, err := store.ToRecord(booking)
	if err != nil {
		return "", fmt.Errorf("failed to encode booking: %w", err)
	}

	id, err := r.store.Create(ctx, TableName, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}
	booking.ID = id
	return id, nil
}

func (r *bookingRepository) ActiveForResource(ctx context.Context, condominiumID, resourceID, fromDate string) ([]model.Booking, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("condominium_id", condominiumID),
		store.Eq("resource_id", resourceID),
		store.Where("date", store.OpGreaterOrEqual, fromDate),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load active bookings: %w", err)
	}
	return store.DecodeAll[model.Booking](records)
}

func (r *bookingRepository) ForResourceOnDate(ctx context.Context, condominiumID, resourceID, date string) ([]model.Booking, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("condominium_id", condominiumID),
		store.Eq("resource_id", resourceID),
		store.Eq("date", date),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for date %s: %w", date, err)
	}
	return store.DecodeAll[model.Booking](records)
}

func (r *bookingRepository) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Booking, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("condominium_id", condominiumID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return store.DecodeAll[model.Booking](records)
}
