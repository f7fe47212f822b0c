package handler

import (
	"context"
	"encoding/json"
	"fxconvert/internal/domain"
	"net/http"
)

type Validator interface {
	ValidateCodes(base, quote string) error
	SupportedCodes() []domain.CurrencyCode
}

type Service interface {
	Convert(ctx context.Context, amount float64, from, to domain.CurrencyCode) (domain.Conversion, error)
	Rate(ctx context.Context, from, to domain.CurrencyCode) (domain.Rate, error)
	History(ctx context.Context) ([]domain.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

type Handler struct {
	validator Validator
	service   Service
}

func NewConversionHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
