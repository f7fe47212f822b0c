package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type HistoryEntryResponse struct {
	ID         string             `json:"id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
	CreatedAt  time.Time          `json:"created_at" example:"2025-01-02T15:04:05Z"`
	Conversion ConversionResponse `json:"conversion"`
}

type GetHistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}

// GetHistory godoc
// @Summary Recent conversions
// @Description Most recent successful conversions, newest first
// @Tags History
// @Produce json
// @Success 200 {object} GetHistoryResponse
// @Failure 500 {object} errorResponse
// @Router /history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.History(r.Context())
	if err != nil {
		msg := "ups, couldn't get history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := GetHistoryResponse{Entries: make([]HistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		res.Entries = append(res.Entries, HistoryEntryResponse{
			ID:         e.ID.String(),
			CreatedAt:  e.CreatedAt,
			Conversion: toConversionResponse(e.Conversion),
		})
	}
	writeJSON(w, http.StatusOK, res)
}

// ClearHistory godoc
// @Summary Clear history
// @Tags History
// @Success 204
// @Failure 500 {object} errorResponse
// @Router /history [delete]
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearHistory(r.Context()); err != nil {
		msg := "ups, couldn't clear history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ClearHistory"}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
