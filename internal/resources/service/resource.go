package service

import (
	"context"
	"errors"
	"time"

	"condohub/internal/resources/repository"
	"condohub/internal/resources/validator"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/sanitize"
	"condohub/pkg/store"
)

const (
	MsgInvalidResource  = "Dados do recurso inválidos."
	MsgResourceNotFound = "Recurso não encontrado ou sem dados."
)

type ResourceService interface {
	Create(ctx context.Context, resource *model.Resource) (*model.Resource, error)
	Get(ctx context.Context, condominiumID, id string) (*model.Resource, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Resource, error)
	Update(ctx context.Context, condominiumID, id string, updates *model.ResourceUpdate) (*model.Resource, error)
	Delete(ctx context.Context, condominiumID, id string) error
}

type resourceService struct {
	repo      repository.ResourceRepository
	validator *validator.ResourceValidator
	clock     clock.Clock
	log       *logger.Logger
}

func NewResourceService(
	repo repository.ResourceRepository,
	resourceValidator *validator.ResourceValidator,
	clk clock.Clock,
	log *logger.Logger,
) ResourceService {
	return &resourceService{
		repo:      repo,
		validator: resourceValidator,
		clock:     clk,
		log:       log,
	}
}

func (s *resourceService) Create(ctx context.Context, resource *model.Resource) (*model.Resource, error) {
	resource.Name = sanitize.Name(resource.Name)

	if details, err := s.validator.Validate(resource); err != nil {
		s.log.Warn("Resource validation failed", "name", resource.Name, "error", err)
		return nil, apperrors.Validation(MsgInvalidResource, details)
	}

	now := s.clock.Now().UTC().Format(time.RFC3339)
	resource.CreatedAt = now
	resource.UpdatedAt = now

	if _, err := s.repo.Create(ctx, resource); err != nil {
		s.log.Error("Failed to create resource", "name", resource.Name, "error", err)
		return nil, apperrors.Internal("Falha ao criar o recurso.", err)
	}

	s.log.Info("Resource created", "resource_id", resource.ID, "name", resource.Name)
	return resource, nil
}

func (s *resourceService) Get(ctx context.Context, condominiumID, id string) (*model.Resource, error) {
	resource, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(MsgResourceNotFound)
		}
		return nil, apperrors.Internal("Falha ao consultar o recurso.", err)
	}
	if !belongsTo(resource, condominiumID) {
		return nil, apperrors.NotFound(MsgResourceNotFound)
	}
	return resource, nil
}

func (s *resourceService) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Resource, error) {
	resources, err := s.repo.ListByCondominium(ctx, condominiumID)
	if err != nil {
		return nil, apperrors.Internal("Falha ao listar os recursos.", err)
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	return resources, nil
}

func (s *resourceService) Update(ctx context.Context, condominiumID, id string, updates *model.ResourceUpdate) (*model.Resource, error) {
	if updates.Name != "" {
		updates.Name = sanitize.Name(updates.Name)
	}

	if details, err := s.validator.ValidateUpdate(updates); err != nil {
		s.log.Warn("Resource update validation failed", "resource_id", id, "error", err)
		return nil, apperrors.Validation(MsgInvalidResource, details)
	}

	// Scope check before writing anything.
	if _, err := s.Get(ctx, condominiumID, id); err != nil {
		return nil, err
	}

	partial := store.Record{}
	if updates.Name != "" {
		partial["name"] = updates.Name
	}
	if updates.Period != "" {
		partial["period"] = string(updates.Period)
	}
	if updates.Availability != nil {
		availability := map[string]any{}
		for day, window := range updates.Availability {
			availability[day] = map[string]any{"start": window.Start, "end": window.End}
		}
		partial["availability"] = availability
	}
	if updates.BookingAdvanceLimitDays != nil {
		partial["booking_advance_limit_days"] = *updates.BookingAdvanceLimitDays
	}
	if len(partial) == 0 {
		return nil, apperrors.InvalidInput("Nenhum campo para atualizar.")
	}
	partial["updated_at"] = s.clock.Now().UTC().Format(time.RFC3339)

	if err := s.repo.Update(ctx, id, partial); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(MsgResourceNotFound)
		}
		return nil, apperrors.Internal("Falha ao atualizar o recurso.", err)
	}

	return s.Get(ctx, condominiumID, id)
}

func (s *resourceService) Delete(ctx context.Context, condominiumID, id string) error {
	if _, err := s.Get(ctx, condominiumID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(MsgResourceNotFound)
		}
		return apperrors.Internal("Falha ao excluir o recurso.", err)
	}

	s.log.Info("Resource deleted", "resource_id", id)
	return nil
}

func belongsTo(resource *model.Resource, condominiumID string) bool {
	for _, id := range resource.CondominiumIDs {
		if id == condominiumID {
			return true
		}
	}
	return false
}
