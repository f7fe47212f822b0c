package handler

import (
	"encoding/json"
	"errors"
	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type ConvertRequest struct {
	Amount string `json:"amount" example:"100,50"`
	From   string `json:"from" example:"USD"`
	To     string `json:"to" example:"BRL"`
}

type ConversionResponse struct {
	Amount          float64 `json:"amount" example:"100"`
	From            string  `json:"from" example:"USD"`
	To              string  `json:"to" example:"BRL"`
	Result          float64 `json:"result" example:"620"`
	Rate            float64 `json:"rate" example:"6.2"`
	Source          string  `json:"source" example:"primary"`
	FormattedAmount string  `json:"formatted_amount" example:"$100.00"`
	FormattedResult string  `json:"formatted_result" example:"R$620.00"`
	RateDescription string  `json:"rate_description" example:"1 USD = 6.2000 BRL"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Convert an amount between two currencies. Falls back to approximate offline rates when providers are unavailable.
// @Tags Conversion
// @Produce json
// @Param amount query string true "Amount, free-form (e.g. 100 or 12,50)"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} ConversionResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.convert(w, r, "Convert", ConvertRequest{Amount: q.Get("amount"), From: q.Get("from"), To: q.Get("to")})
}

// CreateConversion godoc
// @Summary Convert an amount (JSON body)
// @Description Same as GET /convert, with the request passed as JSON
// @Tags Conversion
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} ConversionResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /conversions [post]
func (h *Handler) CreateConversion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ConvertRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.convert(w, r, "CreateConversion", req)
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request, handlerName string, req ConvertRequest) {
	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))

	if err := h.validator.ValidateCodes(from, to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := conversion.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.service.Convert(r.Context(), amount, domain.CurrencyCode(from), domain.CurrencyCode(to))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrRateUnavailable) {
			writeError(w, http.StatusNotFound, "exchange rate unavailable")
			return
		}
		msg := "ups, couldn't convert this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": handlerName, "from": from, "to": to}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toConversionResponse(conv))
}

func toConversionResponse(c domain.Conversion) ConversionResponse {
	return ConversionResponse{
		Amount:          c.SourceAmount,
		From:            c.SourceCurrency.String(),
		To:              c.TargetCurrency.String(),
		Result:          c.ConvertedAmount,
		Rate:            c.Rate,
		Source:          string(c.RateSource),
		FormattedAmount: conversion.FormatAmount(c.SourceAmount, c.SourceCurrency),
		FormattedResult: conversion.FormatAmount(c.ConvertedAmount, c.TargetCurrency),
		RateDescription: conversion.DescribeRate(domain.Rate{
			Base: c.SourceCurrency, Quote: c.TargetCurrency, Value: c.Rate, Source: c.RateSource,
		}),
	}
}
