package handler

import (
	"encoding/json"
	"net/http"

	"condohub/internal/condominiums/service"
	"condohub/pkg/auth"
	apperrors "condohub/pkg/errors"
	httputil "condohub/pkg/http"
	"condohub/pkg/logger"
	"condohub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CondominiumHandler struct {
	service service.CondominiumService
	log     *logger.Logger
}

func NewCondominiumHandler(service service.CondominiumService, log *logger.Logger) *CondominiumHandler {
	return &CondominiumHandler{
		service: service,
		log:     log,
	}
}

// Save writes the caller's own profile. The path has no id on purpose; the
// authenticated uid is the only profile an administrator can touch.
func (h *CondominiumHandler) Save(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Credenciais ausentes.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Save", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var condominium model.Condominium
	if err := json.NewDecoder(r.Body).Decode(&condominium); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Corpo da requisição inválido.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Save", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	saved, err := h.service.Save(r.Context(), principal.UID, &condominium)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Save", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, saved); err != nil {
		h.log.Error("failed to write success response", "handler", "Save", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CondominiumHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	condominium, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, condominium); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CondominiumHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/api/v1/condominiums/me", h.Save)
	router.GET("/api/v1/condominiums/:id", h.Get)
}
