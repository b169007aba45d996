package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/Xadero/slsd/internal/domain/tournament"
	"github.com/Xadero/slsd/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "slsd"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}

// mapError picks the HTTP status from the usecase error class and a finer
// reason from the engine error when one is in the chain.
func mapError(err error) mappedError {
	var out mappedError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		out = mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotFound):
		out = mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrConflict):
		out = mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		out = mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}

	if reason := engineReason(err); reason != "" {
		out.Reason = reason
	}
	return out
}

func engineReason(err error) string {
	switch {
	case errors.Is(err, tournament.ErrInvalidScore):
		return "invalidScore"
	case errors.Is(err, tournament.ErrNotReady):
		return "notReady"
	case errors.Is(err, tournament.ErrStageClosed):
		return "stageClosed"
	case errors.Is(err, tournament.ErrTournamentCompleted):
		return "tournamentCompleted"
	case errors.Is(err, tournament.ErrInsufficientQualifiers):
		return "insufficientQualifiers"
	case errors.Is(err, tournament.ErrInvalidQualifierCount):
		return "invalidQualifierCount"
	case errors.Is(err, tournament.ErrNotEnoughPlayers):
		return "notEnoughPlayers"
	case errors.Is(err, tournament.ErrUnknownEntity):
		return "unknownEntity"
	default:
		return ""
	}
}
