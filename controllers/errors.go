package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"techstore/ledger"
	"techstore/models"
	apperrors "techstore/pkg/errors"
	"techstore/services"
	"techstore/utils"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   *apperrors.ErrValidation
		notFoundErr     *apperrors.ErrNotFound
		unauthorizedErr *apperrors.ErrUnauthorized
		bindingErrs     validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: validationErr.Error(),
			Fields:  validationErr.Fields,
		})
	case errors.As(err, &bindingErrs):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Fields:  utils.FormatValidationError(bindingErrs),
		})
	case errors.As(err, &notFoundErr), errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.As(err, &unauthorizedErr):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, ledger.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, ledger.ErrCheckoutPending):
		c.JSON(http.StatusLocked, models.ErrorResponse{Success: false, Message: err.Error()})
	case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrCheckoutCancelled):
		c.JSON(http.StatusConflict, models.ErrorResponse{Success: false, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Internal server error",
			Error:   err.Error(),
		})
	}
}

func badRequest(c *gin.Context, err error) {
	var bindingErrs validator.ValidationErrors
	if errors.As(err, &bindingErrs) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request body",
		Error:   err.Error(),
	})
}
