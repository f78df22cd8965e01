package repository

import (
	"context"
	"errors"
	"fmt"

	"condohub/pkg/model"
	"condohub/pkg/store"
)

const TableName = "polls"

var ErrNotFound = errors.New("poll not found")

type PollRepository interface {
	Create(ctx context.Context, poll *model.Poll) (string, error)
	Get(ctx context.Context, id string) (*model.Poll, error)
	// ListActive returns the condominium's polls still open at the given
	// instant, comparing ISO timestamps lexicographically.
	ListActive(ctx context.Context, condominiumID, now string) ([]model.Poll, error)
	// ListExpiredActive returns polls still flagged active whose expiry has
	// passed. The expiry sweep flips them off.
	ListExpiredActive(ctx context.Context, now string) ([]model.Poll, error)
	Update(ctx context.Context, id string, partial store.Record) error
	Delete(ctx context.Context, id string) error
}

type pollRepository struct {
	store store.Store
}

func NewPollRepository(st store.Store) PollRepository {
	return &pollRepository{store: st}
}

func (r *pollRepository) Create(ctx context.Context, poll *model.Poll) (string, error) {
	rec, err := store.ToRecord(poll)
	if err != nil {
		return "", fmt.Errorf("failed to encode poll: %w", err)
	}

	id, err := r.store.Create(ctx, TableName, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create poll: %w", err)
	}
	poll.ID = id
	return id, nil
}

func (r *pollRepository) Get(ctx context.Context, id string) (*model.Poll, error) {
	rec, err := r.store.ReadOne(ctx, TableName, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read poll %s: %w", id, err)
	}

	var poll model.Poll
	if err := store.Decode(rec, &poll); err != nil {
		return nil, fmt.Errorf("failed to decode poll %s: %w", id, err)
	}
	return &poll, nil
}

func (r *pollRepository) ListActive(ctx context.Context, condominiumID, now string) ([]model.Poll, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("condominium_id", condominiumID),
		store.Eq("is_active", true),
		store.Where("expires_at", store.OpGreater, now),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list active polls: %w", err)
	}
	return store.DecodeAll[model.Poll](records)
}

func (r *pollRepository) ListExpiredActive(ctx context.Context, now string) ([]model.Poll, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("is_active", true),
		store.Where("expires_at", store.OpLessOrEqual, now),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expired polls: %w", err)
	}
	return store.DecodeAll[model.Poll](records)
}

func (r *pollRepository) Update(ctx context.Context, id string, partial store.Record) error {
	if err := r.store.Update(ctx, TableName, id, partial); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update poll %s: %w", id, err)
	}
	return nil
}

func (r *pollRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, TableName, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete poll %s: %w", id, err)
	}
	return nil
}
