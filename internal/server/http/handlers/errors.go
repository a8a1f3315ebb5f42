package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
	"github.com/polkiloo/routemanager/internal/server/http/dto"
)

// writeError maps domain errors onto HTTP statuses and a structured body.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := errorResponse(err)
	c.JSON(status, body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		validation *domainErrors.ValidationError
		transition *domainErrors.InvalidTransitionError
		delivered  *domainErrors.OrderNotDeliveredError
		duplicate  *domainErrors.DuplicateInvoiceError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "validation",
			Message: validation.Reason,
			Details: map[string]any{"field": validation.Field},
		}
	case errors.As(err, &transition):
		return http.StatusConflict, dto.ErrorResponse{
			Error:   "invalid_transition",
			Message: transition.Error(),
			Details: map[string]any{
				"order_id":  transition.OrderID,
				"current":   transition.Current,
				"requested": transition.Requested,
				"stale":     transition.Stale,
			},
		}
	case errors.As(err, &delivered):
		return http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "order_not_delivered",
			Message: delivered.Error(),
			Details: map[string]any{"order_id": delivered.OrderID, "status": delivered.Status},
		}
	case errors.As(err, &duplicate):
		return http.StatusConflict, dto.ErrorResponse{
			Error:   "duplicate_invoice",
			Message: duplicate.Error(),
			Details: map[string]any{"order_id": duplicate.OrderID, "invoice_id": duplicate.InvoiceID, "folio": duplicate.Folio},
		}
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: err.Error()}
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict, dto.ErrorResponse{Error: "already_exists", Message: err.Error()}
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid_credentials", Message: "login or password is incorrect"}
	case errors.Is(err, domainErrors.ErrPersistence):
		return http.StatusServiceUnavailable, dto.ErrorResponse{Error: "persistence", Message: "storage is unavailable, try again later"}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal", Message: "internal server error"}
	}
}
