package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/uuid"
	"fintrack/internal/validator"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ErrorResponse documents the failure shape of the envelope.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Validation failed"`
	Code    string `json:"code" example:"VALIDATION_FAILED"`
}

// respond writes a successful envelope.
func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidID if the parameter is not a well-formed UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	raw := c.Param(param)
	if !uuid.IsValid(raw) {
		return "", apperrors.ErrInvalidID
	}
	return uuid.Parse(raw)
}

// decodeBody reads the JSON request body into T, normalizes and validates it.
// On failure the error response has already been written and ok is false.
func decodeBody[T any](c *gin.Context) (in T, ok bool) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return in, false
	}

	in, violations := validator.Decode[T](payload)
	if violations != nil {
		logValidation(c, violations)
		respondWithError(c, apperrors.ErrValidationFailed)
		return in, false
	}
	return in, true
}

// bindQuery binds and validates query parameters into dst.
// On failure the error response has already been written and false is returned.
func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		logValidation(c, validator.FromError(err))
		respondWithError(c, apperrors.ErrValidationFailed)
		return false
	}
	return true
}

func logValidation(c *gin.Context, violations validator.Violations) {
	logger.Get().Debugw("request validation failed",
		"request_id", middleware.RequestID(c),
		"path", c.Request.URL.Path,
		"violations", violations.Error(),
	)
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			var violations validator.Violations
			if errors.As(appErr.Internal, &violations) {
				logValidation(c, violations)
			} else {
				logger.Get().Errorw("app error",
					"request_id", middleware.RequestID(c),
					"code", appErr.Code,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
		}
		c.JSON(appErr.StatusCode, Response{Error: appErr.Message, Code: appErr.Code})
		return
	}

	logger.Get().Errorw("unexpected error",
		"request_id", middleware.RequestID(c),
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, Response{
		Error: apperrors.ErrInternalServer.Message,
		Code:  apperrors.ErrInternalServer.Code,
	})
}
