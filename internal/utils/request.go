package utils

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/shelfglow/inventory-backend/internal/errors"
	"github.com/shelfglow/inventory-backend/internal/utils/response"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))
		response.Error(w, appErrors.ValidationError("Invalid input data").WithDetail(err.Error()))
		return false
	}

	return true

}
