package repository

import (
	"context"
	"errors"
	"fmt"

	"condohub/pkg/model"
	"condohub/pkg/store"
)

const TableName = "condominiums"

var ErrNotFound = errors.New("condominium not found")

type CondominiumRepository interface {
	// Upsert writes the profile under the identity provider's uid.
	Upsert(ctx context.Context, id string, condominium *model.Condominium) error
	Get(ctx context.Context, id string) (*model.Condominium, error)
}

type condominiumRepository struct {
	store store.Store
}

func NewCondominiumRepository(st store.Store) CondominiumRepository {
	return &condominiumRepository{store: st}
}

func (r *condominiumRepository) Upsert(ctx context.Context, id string, condominium *model.Condominium) error {
	rec, err := store.ToRecord(condominium)
	if err != nil {
		return fmt.Errorf("failed to encode condominium: %w", err)
	}

	if err := r.store.Upsert(ctx, TableName, id, rec); err != nil {
		return fmt.Errorf("failed to upsert condominium %s: %w", id, err)
	}
	condominium.ID = id
	return nil
}

func (r *condominiumRepository) Get(ctx context.Context, id string) (*model.Condominium, error) {
	rec, err := r.store.ReadOne(ctx, TableName, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read condominium %s: %w", id, err)
	}

	var condominium model.Condominium
	if err := store.Decode(rec, &condominium); err != nil {
		return nil, fmt.Errorf("failed to decode condominium %s: %w", id, err)
	}
	return &condominium, nil
}
