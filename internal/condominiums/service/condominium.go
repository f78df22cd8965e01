package service

import (
	"context"
	"errors"

	"condohub/internal/condominiums/repository"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/sanitize"

	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidCondominium  = "Dados do condomínio inválidos."
	MsgCondominiumNotFound = "Condomínio não encontrado ou sem dados."
)

type CondominiumService interface {
	// Save writes the profile under the administrator's uid. Creating and
	// updating are the same operation.
	Save(ctx context.Context, id string, condominium *model.Condominium) (*model.Condominium, error)
	Get(ctx context.Context, id string) (*model.Condominium, error)
}

type condominiumService struct {
	repo     repository.CondominiumRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewCondominiumService(repo repository.CondominiumRepository, log *logger.Logger) CondominiumService {
	return &condominiumService{
		repo:     repo,
		validate: validator.New(),
		log:      log,
	}
}

func (s *condominiumService) Save(ctx context.Context, id string, condominium *model.Condominium) (*model.Condominium, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Identificador do condomínio é obrigatório.")
	}

	condominium.Name = sanitize.Name(condominium.Name)
	condominium.Address = sanitize.Name(condominium.Address)

	if err := s.validate.Struct(condominium); err != nil {
		var fieldErrors validator.ValidationErrors
		details := map[string]any{}
		if errors.As(err, &fieldErrors) {
			for _, fieldErr := range fieldErrors {
				details[fieldErr.Field()] = "valor inválido"
			}
		}
		s.log.Warn("Condominium validation failed", "condominium_id", id, "error", err)
		return nil, apperrors.Validation(MsgInvalidCondominium, details)
	}

	if err := s.repo.Upsert(ctx, id, condominium); err != nil {
		s.log.Error("Failed to save condominium", "condominium_id", id, "error", err)
		return nil, apperrors.Internal("Falha ao salvar o condomínio.", err)
	}

	s.log.Info("Condominium profile saved", "condominium_id", id)
	return condominium, nil
}

func (s *condominiumService) Get(ctx context.Context, id string) (*model.Condominium, error) {
	condominium, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(MsgCondominiumNotFound)
		}
		return nil, apperrors.Internal("Falha ao consultar o condomínio.", err)
	}
	return condominium, nil
}
