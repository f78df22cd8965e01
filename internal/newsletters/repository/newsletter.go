package repository

import (
	"context"
	"errors"
	"fmt"

	"condohub/pkg/model"
	"condohub/pkg/store"
)

const TableName = "newsletters"

var ErrNotFound = errors.New("newsletter not found")

type NewsletterRepository interface {
	Create(ctx context.Context, newsletter *model.Newsletter) (string, error)
	Get(ctx context.Context, id string) (*model.Newsletter, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Newsletter, error)
	Delete(ctx context.Context, id string) error
}

type newsletterRepository struct {
	store store.Store
}

func NewNewsletterRepository(st store.Store) NewsletterRepository {
	return &newsletterRepository{store: st}
}

func (r *newsletterRepository) Create(ctx context.Context, newsletter *model.Newsletter) (string, error) {
	rec, err := store.ToRecord(newsletter)
	if err != nil {
		return "", fmt.Errorf("failed to encode newsletter: %w", err)
	}

	id, err := r.store.Create(ctx, TableName, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create newsletter: %w", err)
	}
	newsletter.ID = id
	return id, nil
}

func (r *newsletterRepository) Get(ctx context.Context, id string) (*model.Newsletter, error) {
	rec, err := r.store.ReadOne(ctx, TableName, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read newsletter %s: %w", id, err)
	}

	var newsletter model.Newsletter
	if err := store.Decode(rec, &newsletter); err != nil {
		return nil, fmt.Errorf("failed to decode newsletter %s: %w", id, err)
	}
	return &newsletter, nil
}

func (r *newsletterRepository) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Newsletter, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Eq("condominium_id", condominiumID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list newsletters: %w", err)
	}
	return store.DecodeAll[model.Newsletter](records)
}

func (r *newsletterRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, TableName, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete newsletter %s: %w", id, err)
	}
	return nil
}
