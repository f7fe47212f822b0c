package handler

import (
	"errors"
	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetRateResponse struct {
	Base        string  `json:"base" example:"USD"`
	Quote       string  `json:"quote" example:"BRL"`
	Value       float64 `json:"value" example:"6.2"`
	Source      string  `json:"source" example:"primary"`
	Description string  `json:"description" example:"1 USD = 6.2000 BRL"`
}

// GetRate godoc
// @Summary Get exchange rate
// @Description Resolve the current rate for a currency pair
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency code"
// @Param quote path string true "Quote currency code"
// @Success 200 {object} GetRateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{base}/{quote} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	quote := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "quote")))

	if err := h.validator.ValidateCodes(base, quote); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rate, err := h.service.Rate(r.Context(), domain.CurrencyCode(base), domain.CurrencyCode(quote))
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			writeError(w, http.StatusNotFound, "exchange rate unavailable")
			return
		}
		msg := "ups, couldn't get rate by codes this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRate", "base": base, "quote": quote}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetRateResponse{
		Base:        base,
		Quote:       quote,
		Value:       rate.Value,
		Source:      string(rate.Source),
		Description: conversion.DescribeRate(rate),
	})
}
