package httpapi

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/statsboard/internal/usecase"
)

const errorDomain = "statsboard"

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, dataResponse{Data: data})
}

func respondError(w http.ResponseWriter, status int, reason, message string) {
	respondJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    status,
			Message: message,
			Errors: []errorDetail{
				{Domain: errorDomain, Reason: reason, Message: message},
			},
		},
	})
}

// respondUsecaseError maps service sentinels onto HTTP statuses.
func respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalidInput", err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		respondError(w, http.StatusNotFound, "notFound", err.Error())
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		respondError(w, http.StatusServiceUnavailable, "dependencyUnavailable", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
