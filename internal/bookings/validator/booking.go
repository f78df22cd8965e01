package validator

import (
	"errors"

	"condohub/pkg/logger"
	"condohub/pkg/model"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("valid_time", validClockTime); err != nil {
		log.Fatal("Failed to register 'valid_time' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func validClockTime(fl validator.FieldLevel) bool {
	return model.ValidClockTime(fl.Field().String())
}

// Validate checks a candidate booking's shape. Missing and malformed fields
// are reported per field; business rules live in the admission engine.
func (v *BookingValidator) Validate(req *model.BookingRequest) (map[string]any, error) {
	err := v.validate.Struct(req)
	if err == nil {
		return nil, nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil, err
	}

	details := map[string]any{}
	for _, fieldErr := range fieldErrors {
		switch fieldErr.Tag() {
		case "required":
			details[fieldErr.Field()] = "campo obrigatório"
		case "datetime":
			details[fieldErr.Field()] = "data inválida, use o formato AAAA-MM-DD"
		case "valid_time":
			details[fieldErr.Field()] = "horário inválido, use o formato HH:MM"
		default:
			details[fieldErr.Field()] = "valor inválido"
		}
	}
	return details, err
}
