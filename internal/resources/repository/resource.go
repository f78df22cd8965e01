package repository

import (
	"context"
	"errors"
	"fmt"

	"condohub/pkg/model"
	"condohub/pkg/store"
)

const TableName = "resources"

var ErrNotFound = errors.New("resource not found")

type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) (string, error)
	Get(ctx context.Context, id string) (*model.Resource, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Resource, error)
	Update(ctx context.Context, id string, partial store.Record) error
	Delete(ctx context.Context, id string) error
}

type resourceRepository struct {
	store store.Store
}

func NewResourceRepository(st store.Store) ResourceRepository {
	return &resourceRepository{store: st}
}

func (r *resourceRepository) Create(ctx context.Context, resource *model.Resource) (string, error) {
	rec, err := store.ToRecord(resource)
	if err != nil {
		return "", fmt.Errorf("failed to encode resource: %w", err)
	}

	id, err := r.store.Create(ctx, TableName, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create resource: %w", err)
	}
	resource.ID = id
	return id, nil
}

func (r *resourceRepository) Get(ctx context.Context, id string) (*model.Resource, error) {
	rec, err := r.store.ReadOne(ctx, TableName, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read resource %s: %w", id, err)
	}

	var resource model.Resource
	if err := store.Decode(rec, &resource); err != nil {
		return nil, fmt.Errorf("failed to decode resource %s: %w", id, err)
	}
	return &resource, nil
}

func (r *resourceRepository) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Resource, error) {
	records, err := r.store.ReadAll(ctx, TableName, []store.Filter{
		store.Where("condominium_ids", store.OpArrayContains, condominiumID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return store.DecodeAll[model.Resource](records)
}

func (r *resourceRepository) Update(ctx context.Context, id string, partial store.Record) error {
	if err := r.store.Update(ctx, TableName, id, partial); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update resource %s: %w", id, err)
	}
	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, TableName, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete resource %s: %w", id, err)
	}
	return nil
}
