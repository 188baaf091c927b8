package router

import (
	"net/http"
	"strconv"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// HandlerFunction returns the envelope to write. Returning nil is a bug and
// is answered with a 500.
type HandlerFunction func(*RequestContext) *ServiceResult

// ServiceResult is the {code, data, message} envelope every endpoint returns.
type ServiceResult struct {
	StatusCode int    `json:"code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

func (result *ServiceResult) ToJSON() gin.H {
	return gin.H{
		"code":    result.StatusCode,
		"data":    result.Data,
		"message": result.Message,
	}
}

// GetLogger returns the request-scoped logger installed by the router.
func GetLogger(ctx *RequestContext) *log.Logger {
	return log.GetLoggerInstanceFromContext(ctx.Request.Context(), nil)
}

func OKResult(data any, message string) *ServiceResult {
	return ErrorResult(http.StatusOK, message, data)
}

func CreatedResult(data any, resourceName string) *ServiceResult {
	return ErrorResult(http.StatusCreated, resourceName+" created successfully", data)
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return ErrorResult(http.StatusTooManyRequests, "Too Many Requests", data)
}

func BadRequestResult(message string, payload any) *ServiceResult {
	return ErrorResult(http.StatusBadRequest, message, payload)
}

func UnauthorizedResult(message string) *ServiceResult {
	return ErrorResult(http.StatusUnauthorized, message, nil)
}

func NotFoundResult(message string) *ServiceResult {
	return ErrorResult(http.StatusNotFound, message, nil)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, message, nil)
}

// ErrorResult builds an envelope with an explicit status. Despite the name it
// also serves non-error statuses such as the health check's 200.
func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	}
}

// ResultFromError maps a service error to its status and client-safe message.
func ResultFromError(err error) *ServiceResult {
	return ErrorResult(apperrors.HTTPStatusCode(err), apperrors.GetHumanReadableMessage(err), nil)
}

func ParseIDParam(ctx *RequestContext, paramName string) (uint, *ServiceResult) {
	raw := ctx.Param(paramName)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		GetLogger(ctx).Warn("Invalid ID parameter", "param", paramName, "value", raw)
		return 0, BadRequestResult("Invalid ID parameter", nil)
	}

	return uint(id), nil
}
