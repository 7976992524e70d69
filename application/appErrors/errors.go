package apperrors

import (
	"fmt"
	"net/http"
	"time"

	"votegate.io/infrastructure/logger"
	server_response "votegate.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "payload validation failed", nil, *errMessages, nil)
}

func AuthenticationError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized, message, nil, nil, nil)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "abnormal payload passed", nil, nil, nil)
}

// Storage or other backing-service failures. Deliberately distinct from
// every verification outcome so clients can tell "you failed the check"
// apart from "the system is broken".
func StorageUnavailableError(ctx interface{}, err error) {
	logger.Error("backing store unavailable", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		"Our service is temporarily unavailable. Please try again shortly.", nil, nil, nil)
}

func ExternalDependencyError(ctx interface{}, serviceName string, err error) {
	logger.Error(fmt.Sprintf("error with %s", serviceName), logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		"Our service is temporarily unavailable. Please try again shortly.", nil, nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Something went wrong on our end. Please try again later.", nil, nil, nil)
}

func ClientError(ctx interface{}, msg string, errs []error, responseCode *uint) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs, responseCode)
}

func CustomError(ctx interface{}, code int, msg string, responseCode *uint) {
	server_response.Responder.Respond(ctx, code, msg, nil, nil, responseCode)
}

// RateLimitError includes the remaining cooldown so the client can render
// a countdown instead of blind retries.
func RateLimitError(ctx interface{}, retryAfter time.Duration, responseCode *uint) {
	server_response.Responder.Respond(ctx, http.StatusTooManyRequests,
		fmt.Sprintf("too many verification attempts. retry in %s", retryAfter.Round(time.Second)),
		map[string]any{"retryAfterSeconds": int(retryAfter.Seconds())}, nil, responseCode)
}
