package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"newsdesk.app/internal/core/newspaper"
	"newsdesk.app/internal/core/subscription"
)

// RegisterValidators installs the custom binding tags on gin's validator
// and makes validation errors report JSON field names
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("frequency", validateFrequency); err != nil {
		return err
	}
	return v.RegisterValidation("subscription_status", validateSubscriptionStatus)
}

func validateFrequency(fl validator.FieldLevel) bool {
	return newspaper.FrequencyFromString(fl.Field().String()).IsValid()
}

func validateSubscriptionStatus(fl validator.FieldLevel) bool {
	return subscription.StatusFromString(fl.Field().String()).IsValid()
}

// bindingMessage turns a binding failure into a client-facing sentence
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "frequency":
		return field + " must be one of daily, weekly, monthly, quarterly, yearly"
	case "subscription_status":
		return field + " must be one of active, expired, cancelled"
	default:
		return field + " is invalid"
	}
}
