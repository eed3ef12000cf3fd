package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	expensedomain "github.com/marmaralog/brokerage/internal/expense/domain"
	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
	paymentdomain "github.com/marmaralog/brokerage/internal/payment/domain"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case isValidationSentinel(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundSentinel(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, shipmentdomain.ErrDuplicate),
		errors.Is(err, hscodedomain.ErrDuplicate),
		errors.Is(err, shipmentdomain.ErrConcurrentModification),
		errors.Is(err, paymentdomain.ErrConcurrentModification):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, paymentdomain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "insufficient_balance",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func isValidationSentinel(err error) bool {
	for _, sentinel := range []error{
		shipmentdomain.ErrInvalidReference,
		shipmentdomain.ErrInvalidImporter,
		shipmentdomain.ErrInvalidStatus,
		allocationdomain.ErrEmptyInput,
		allocationdomain.ErrNegativePool,
		allocationdomain.ErrNegativeValue,
		allocationdomain.ErrZeroQuantity,
		allocationdomain.ErrDegenerateDistribution,
		allocationdomain.ErrInvalidMethod,
		hscodedomain.ErrInvalidCode,
		hscodedomain.ErrInvalidRateFraction,
		taxcalcdomain.ErrInvalidReference,
		taxcalcdomain.ErrEmptyItems,
		taxcalcdomain.ErrInvalidUnitCount,
		taxcalcdomain.ErrNegativeCost,
		taxcalcdomain.ErrNegativePool,
		taxcalcdomain.ErrUnknownClassification,
		taxcalcdomain.ErrInvalidRate,
		paymentdomain.ErrInvalidPayer,
		paymentdomain.ErrInvalidReference,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidType,
		expensedomain.ErrInvalidDescription,
		expensedomain.ErrInvalidAmount,
		expensedomain.ErrInvalidRate,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isNotFoundSentinel(err error) bool {
	for _, sentinel := range []error{
		shipmentdomain.ErrNotFound,
		allocationdomain.ErrNoResults,
		hscodedomain.ErrNotFound,
		taxcalcdomain.ErrNotFound,
		paymentdomain.ErrNotFound,
		paymentdomain.ErrDistributionNotFound,
		expensedomain.ErrExpenseNotFound,
		expensedomain.ErrInvoiceNotFound,
		gorm.ErrRecordNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
