package validator

import (
	"errors"
	"fmt"

	"condohub/pkg/logger"
	"condohub/pkg/model"

	"github.com/go-playground/validator/v10"
)

var weekdays = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

type ResourceValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewResourceValidator(log *logger.Logger) *ResourceValidator {
	return &ResourceValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks a resource's shape plus the availability map, which struct
// tags cannot reach: weekday keys must be English day names and every window
// must be a well-formed range.
func (v *ResourceValidator) Validate(resource *model.Resource) (map[string]any, error) {
	details := map[string]any{}

	if err := v.validate.Struct(resource); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return nil, err
		}
		for _, fieldErr := range fieldErrors {
			details[fieldErr.Field()] = messageFor(fieldErr.Tag())
		}
	}

	validateAvailability(resource.Availability, details)

	if len(details) > 0 {
		return details, fmt.Errorf("resource validation failed")
	}
	return nil, nil
}

// ValidateUpdate checks only the fields present in a partial update.
func (v *ResourceValidator) ValidateUpdate(updates *model.ResourceUpdate) (map[string]any, error) {
	details := map[string]any{}

	if err := v.validate.Struct(updates); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return nil, err
		}
		for _, fieldErr := range fieldErrors {
			details[fieldErr.Field()] = messageFor(fieldErr.Tag())
		}
	}

	if updates.Availability != nil {
		validateAvailability(updates.Availability, details)
	}

	if len(details) > 0 {
		return details, fmt.Errorf("resource update validation failed")
	}
	return nil, nil
}

func validateAvailability(availability map[string]model.TimeWindow, details map[string]any) {
	for day, window := range availability {
		if !weekdays[day] {
			details["availability."+day] = "dia da semana inválido"
			continue
		}
		if !model.ValidClockTime(window.Start) || !model.ValidClockTime(window.End) {
			details["availability."+day] = "horário inválido, use o formato HH:MM"
			continue
		}
		if window.Start >= window.End {
			details["availability."+day] = "horário de início deve ser anterior ao de término"
		}
	}
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "campo obrigatório"
	case "min", "max":
		return "tamanho fora do permitido"
	case "oneof":
		return "valor fora das opções permitidas"
	default:
		return "valor inválido"
	}
}
