// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("tier", validateTier)
		_ = v.RegisterValidation("log_action", validateLogAction)
		_ = v.RegisterValidation("date_range", validateDateRange)
		_ = v.RegisterValidation("backup_kind", validateBackupKind)
		_ = v.RegisterValidation("service_type", validateServiceType)
	}
}

func validateTier(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Premium", "Elite Premium", "Professional", "Institutional":
		return true
	}
	return false
}

func validateLogAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "login", "logout", "access", "create", "edit", "delete",
		"upload", "extract", "backup_create", "backup_restore",
		"backup_delete", "backup_download", "backup_upload", "logs_clear":
		return true
	}
	return false
}

func validateDateRange(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all", "today", "week", "month":
		return true
	}
	return false
}

func validateBackupKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "manual", "automatic":
		return true
	}
	return false
}

func validateServiceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "portfolio", "individual_bot", "custom_development", "consulting", "other":
		return true
	}
	return false
}
