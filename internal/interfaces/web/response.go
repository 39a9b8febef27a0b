package web

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/player-scout/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "player-scout"
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
	// Message shown on rendered pages; internal detail stays in the logs.
	PageMessage string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "web.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "web.writeError")
	defer span.End()

	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus:  http.StatusBadRequest,
			Reason:      "invalidInput",
			Status:      "INVALID_ARGUMENT",
			PageMessage: "Parâmetros de busca inválidos",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus:  http.StatusNotFound,
			Reason:      "notFound",
			Status:      "NOT_FOUND",
			PageMessage: "Jogador não encontrado",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus:  http.StatusUnauthorized,
			Reason:      "unauthorized",
			Status:      "UNAUTHENTICATED",
			PageMessage: "Acesso não autorizado",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus:  http.StatusServiceUnavailable,
			Reason:      "dependencyUnavailable",
			Status:      "UNAVAILABLE",
			PageMessage: "Serviço de dados indisponível no momento",
		}
	default:
		return mappedError{
			HTTPStatus:  http.StatusInternalServerError,
			Reason:      "internalError",
			Status:      "INTERNAL",
			PageMessage: "Erro interno do servidor",
		}
	}
}
