package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

const (
	labelNotFound     = "Not found"
	labelInvalidParam = "Invalid parameter"
	labelInternal     = "Internal server error"

	internalMessage = "An unexpected error occurred"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// paramError is a malformed or missing request parameter.
type paramError struct {
	msg string
}

func (e *paramError) Error() string { return e.msg }

func (e *paramError) Unwrap() error { return domain.ErrInvalidParameter }

func typeMismatch(name, typ string) error {
	return &paramError{msg: fmt.Sprintf("Parameter '%s' should be of type %s", name, typ)}
}

func missingParam(name string) error {
	return &paramError{msg: fmt.Sprintf("Parameter '%s' is required", name)}
}

// mapDomainErrorToHTTP returns the status, label and client-safe message for err.
func mapDomainErrorToHTTP(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrDepartmentNotFound):
		return http.StatusNotFound, ErrorResponse{Error: labelNotFound, Message: err.Error()}

	case errors.Is(err, paging.ErrInvalidPage),
		errors.Is(err, paging.ErrInvalidSize),
		errors.Is(err, domain.ErrInvalidParameter),
		errors.Is(err, domain.ErrInvalidDepartmentName):
		return http.StatusBadRequest, ErrorResponse{Error: labelInvalidParam, Message: err.Error()}

	default:
		return http.StatusInternalServerError, ErrorResponse{Error: labelInternal, Message: internalMessage}
	}
}

// abortWithError renders err and logs it when it is a server-side failure.
func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status, body := mapDomainErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("request_id", RequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
