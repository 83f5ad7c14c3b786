package validator

import (
	"log"
	"regexp"

	"creatorhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-signup-role': роли, доступные при самостоятельной регистрации
	mustRegister("is-signup-role", validateSignupRole)

	// 'is-creator-level': Normal | Vip | Platinum
	mustRegister("is-creator-level", validateCreatorLevel)

	mustRegister("username", validateUsername)
}

func validateSignupRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустое значение обрабатывает 'required' или значение по умолчанию
	}
	switch models.UserRole(value) {
	case models.UserRoleCreator, models.UserRoleSupporter:
		return true
	default:
		return false
	}
}

func validateCreatorLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.CreatorLevel(value).IsValid()
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return usernamePattern.MatchString(value)
}
