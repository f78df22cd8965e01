package handler

import (
	"encoding/json"
	"net/http"

	"condohub/internal/bookings/service"
	"condohub/pkg/auth"
	apperrors "condohub/pkg/errors"
	httputil "condohub/pkg/http"
	"condohub/pkg/logger"
	"condohub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// Create submits a booking candidate. The authenticated uid always wins over
// whatever user_id the body carries.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Corpo da requisição inválido.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if principal, ok := auth.FromContext(r.Context()); ok {
		req.UserID = principal.UID
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreatedWithMessage(w, result.Booking, result.Message); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreatedWithMessage", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	condominiumID := r.URL.Query().Get("condominium_id")
	if condominiumID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Parâmetro condominium_id é obrigatório.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.service.ListByCondominium(r.Context(), condominiumID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

// Slots lists the bookable hours of a resource on a date.
func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	slots, err := h.service.AvailableSlots(
		r.Context(),
		query.Get("condominium_id"),
		query.Get("resource_id"),
		query.Get("date"),
	)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Slots", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "Slots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.List)
	router.GET("/api/v1/bookings/slots", h.Slots)
}
