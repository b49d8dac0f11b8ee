package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

// registerCustomRules wires the domain value checks into the validator
// instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-post-type", validatePostType)
	mustRegister("is-application-status", validateApplicationStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.ValidUserRole(models.UserRole(fl.Field().String()))
}

func validatePostType(fl validator.FieldLevel) bool {
	return models.ValidPostType(models.PostType(fl.Field().String()))
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	return models.ValidApplicationStatus(models.ApplicationStatus(fl.Field().String()))
}
