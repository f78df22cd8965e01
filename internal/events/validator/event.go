package validator

import (
	"errors"
	"fmt"

	"condohub/pkg/logger"
	"condohub/pkg/model"

	"github.com/go-playground/validator/v10"
)

type EventValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewEventValidator(log *logger.Logger) *EventValidator {
	return &EventValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks an event's shape and the cross-field rules the struct tags
// cannot express: hourly events and open daily events carry both times, and
// any window present must be a well-formed range.
func (v *EventValidator) Validate(event *model.Event) (map[string]any, error) {
	details := map[string]any{}

	if err := v.validate.Struct(event); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return nil, err
		}
		for _, fieldErr := range fieldErrors {
			details[fieldErr.Field()] = messageFor(fieldErr.Tag())
		}
	}

	if event.Status == model.EventOpen && event.Type == model.EventHourly {
		details["type"] = "evento de abertura deve ser do tipo daily"
	}

	if event.NeedsTimes() {
		if event.StartTime == "" {
			details["start_time"] = "campo obrigatório para este tipo de evento"
		}
		if event.EndTime == "" {
			details["end_time"] = "campo obrigatório para este tipo de evento"
		}
	}

	for field, value := range map[string]string{"start_time": event.StartTime, "end_time": event.EndTime} {
		if value != "" && !model.ValidClockTime(value) {
			details[field] = "horário inválido, use o formato HH:MM"
		}
	}

	if event.StartTime != "" && event.EndTime != "" && event.StartTime >= event.EndTime {
		details["start_time"] = "horário de início deve ser anterior ao de término"
	}

	if len(details) > 0 {
		return details, fmt.Errorf("event validation failed")
	}
	return nil, nil
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "campo obrigatório"
	case "datetime":
		return "data inválida, use o formato AAAA-MM-DD"
	case "oneof":
		return "valor fora das opções permitidas"
	case "min", "max":
		return "tamanho fora do permitido"
	default:
		return "valor inválido"
	}
}
