package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	alertsdomain "github.com/smallbiznis/meterdash/internal/alerts/domain"
	balancedomain "github.com/smallbiznis/meterdash/internal/balance/domain"
	costsdomain "github.com/smallbiznis/meterdash/internal/costs/domain"
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/smallbiznis/meterdash/internal/ratelimit"
	spenddomain "github.com/smallbiznis/meterdash/internal/spend/domain"
	subscriptiondomain "github.com/smallbiznis/meterdash/internal/subscription/domain"
	usagedomain "github.com/smallbiznis/meterdash/internal/usage/domain"
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

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

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

		if rl, ok := ratelimit.AsRateLimited(lastErr.Err); ok {
			retryAfter := int(rl.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: errorPayload{
				Type:    "rate_limited",
				Message: "too many requests",
			}})
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

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	// Upstream failures surface as a bad gateway with the upstream's own
	// message so operators see the real cause without log digging.
	if apiErr, ok := metering.AsAPIError(err); ok {
		return http.StatusBadGateway, errorPayload{
			Type:    "upstream_error",
			Message: metering.ErrorMessage(apiErr),
		}
	}

	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, balancedomain.ErrInvalidCustomer),
		errors.Is(err, costsdomain.ErrInvalidCustomer),
		errors.Is(err, spenddomain.ErrInvalidCustomer),
		errors.Is(err, alertsdomain.ErrInvalidCustomer),
		errors.Is(err, alertsdomain.ErrInvalidAlertID),
		errors.Is(err, alertsdomain.ErrInvalidAlertType),
		errors.Is(err, alertsdomain.ErrInvalidThreshold),
		errors.Is(err, usagedomain.ErrInvalidCustomer),
		errors.Is(err, usagedomain.ErrInvalidEventType),
		errors.Is(err, usagedomain.ErrNoEvents),
		errors.Is(err, subscriptiondomain.ErrInvalidCustomer),
		errors.Is(err, subscriptiondomain.ErrInvalidContract),
		errors.Is(err, subscriptiondomain.ErrInvalidSubscription),
		errors.Is(err, subscriptiondomain.ErrInvalidAmount),
		errors.Is(err, subscriptiondomain.ErrInvalidQuantity):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	return strings.TrimPrefix(code, "invalid_")
}

// classifyErrorForLog tags request-log entries without leaking raw errors.
func classifyErrorForLog(err error) (string, string) {
	switch {
	case err == nil:
		return "", ""
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation_error", "invalid_request"
	default:
		if _, ok := ratelimit.AsRateLimited(err); ok {
			return "rate_limited", "rate_limited"
		}
		if apiErr, ok := metering.AsAPIError(err); ok {
			return "upstream_error", strconv.Itoa(apiErr.Status)
		}
		if errors.Is(err, ErrNotFound) {
			return "not_found", "not_found"
		}
		return "internal_error", "internal_error"
	}
}
