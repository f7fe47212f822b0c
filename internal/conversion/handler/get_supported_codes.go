package handler

import (
	"fxconvert/internal/conversion"
	"net/http"
)

type Currency struct {
	Code   string `json:"code" example:"BRL"`
	Symbol string `json:"symbol" example:"R$"`
	Name   string `json:"name" example:"Brazilian Real"`
}

type GetSupportedCodesResponse struct {
	Currencies []Currency `json:"currencies"`
}

// GetSupportedCodes godoc
// @Summary List supported currencies
// @Description Retrieve all supported currency codes with display symbol and name
// @Tags Rates
// @Produce json
// @Success 200 {object} GetSupportedCodesResponse
// @Router /rates/supported-currencies [get]
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, _ *http.Request) {
	codes := h.validator.SupportedCodes()
	res := GetSupportedCodesResponse{Currencies: make([]Currency, 0, len(codes))}
	for _, c := range codes {
		res.Currencies = append(res.Currencies, Currency{
			Code:   c.String(),
			Symbol: conversion.Symbol(c),
			Name:   conversion.Name(c),
		})
	}
	writeJSON(w, http.StatusOK, res)
}
