package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateCodes(base, quote string) error {
	args := m.Called(base, quote)
	return args.Error(0)
}

func (m *MockValidator) SupportedCodes() []domain.CurrencyCode {
	args := m.Called()
	codes, _ := args.Get(0).([]domain.CurrencyCode)
	return codes
}

type MockService struct{ mock.Mock }

func (m *MockService) Convert(ctx context.Context, amount float64, from, to domain.CurrencyCode) (domain.Conversion, error) {
	args := m.Called(ctx, amount, from, to)
	c, _ := args.Get(0).(domain.Conversion)
	return c, args.Error(1)
}

func (m *MockService) Rate(ctx context.Context, from, to domain.CurrencyCode) (domain.Rate, error) {
	args := m.Called(ctx, from, to)
	r, _ := args.Get(0).(domain.Rate)
	return r, args.Error(1)
}

func (m *MockService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]domain.HistoryEntry)
	return entries, args.Error(1)
}

func (m *MockService) ClearHistory(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type errorJSON struct {
	Error string `json:"error"`
}

func withRouteParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	return ej.Error
}

var usdToBrl = domain.Conversion{
	SourceAmount:    100,
	SourceCurrency:  domain.USD,
	TargetCurrency:  domain.BRL,
	ConvertedAmount: 620,
	Rate:            6.2,
	RateSource:      domain.SourcePrimary,
}

// --- Convert ---

func TestHandler_Convert_ValidationErrors(t *testing.T) {
	cases := []struct {
		name         string
		validatorErr error
	}{
		{name: "base required", validatorErr: rate.ErrBaseRequired},
		{name: "quote required", validatorErr: rate.ErrQuoteRequired},
		{name: "base unsupported", validatorErr: rate.ErrBaseUnsupported},
		{name: "quote unsupported", validatorErr: rate.ErrQuoteUnsupported},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewConversionHandler(mockValidator, mockService)

			req := httptest.NewRequest(http.MethodGet, "/convert?amount=100&from=%20usd%20&to=brl", nil)
			rr := httptest.NewRecorder()

			mockValidator.On("ValidateCodes", "USD", "BRL").Return(tc.validatorErr).Once()

			h.Convert(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, tc.validatorErr.Error(), decodeError(t, rr))
			mockService.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockValidator.AssertExpectations(t)
		})
	}
}

func TestHandler_Convert_UnparsableAmount(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	req := httptest.NewRequest(http.MethodGet, "/convert?amount=abc&from=USD&to=BRL", nil)
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "USD", "BRL").Return(nil).Once()

	h.Convert(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, decodeError(t, rr), domain.ErrInvalidAmount.Error())
	mockService.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Convert_RefusesRewrittenAmounts(t *testing.T) {
	for _, amount := range []string{"1e12", "0x10", "NaN", "+5"} {
		t.Run(amount, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewConversionHandler(mockValidator, mockService)

			req := httptest.NewRequest(http.MethodGet, "/convert?amount="+url.QueryEscape(amount)+"&from=USD&to=BRL", nil)
			rr := httptest.NewRecorder()
			mockValidator.On("ValidateCodes", "USD", "BRL").Return(nil).Once()

			h.Convert(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Contains(t, decodeError(t, rr), domain.ErrInvalidAmount.Error())
			mockService.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Convert_NegativeAmountReachesValidation(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	req := httptest.NewRequest(http.MethodGet, "/convert?amount=-1&from=USD&to=BRL", nil)
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "USD", "BRL").Return(nil).Once()
	mockService.On("Convert", mock.Anything, -1.0, domain.USD, domain.BRL).
		Return(domain.Conversion{}, fmt.Errorf("%w: must be greater than zero", domain.ErrInvalidAmount)).Once()

	h.Convert(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_Convert_ServiceErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "invalid amount", err: fmt.Errorf("%w: must not exceed 999999999", domain.ErrInvalidAmount), wantCode: http.StatusBadRequest, wantMsg: "invalid amount: must not exceed 999999999"},
		{name: "unavailable", err: fmt.Errorf("failed to convert: %w", domain.ErrRateUnavailable), wantCode: http.StatusNotFound, wantMsg: "exchange rate unavailable"},
		{name: "internal", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMsg: "ups, couldn't convert this time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewConversionHandler(mockValidator, mockService)

			req := httptest.NewRequest(http.MethodGet, "/convert?amount=100&from=USD&to=BRL", nil)
			rr := httptest.NewRecorder()
			mockValidator.On("ValidateCodes", "USD", "BRL").Return(nil).Once()
			mockService.On("Convert", mock.Anything, 100.0, domain.USD, domain.BRL).Return(domain.Conversion{}, tc.err).Once()

			h.Convert(rr, req)

			require.Equal(t, tc.wantCode, rr.Code)
			require.Equal(t, tc.wantMsg, decodeError(t, rr))
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_Convert_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	req := httptest.NewRequest(http.MethodGet, "/convert?amount=100,00&from=usd&to=brl", nil)
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "USD", "BRL").Return(nil).Once()
	mockService.On("Convert", mock.Anything, 100.0, domain.USD, domain.BRL).Return(usdToBrl, nil).Once()

	h.Convert(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res ConversionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, ConversionResponse{
		Amount:          100,
		From:            "USD",
		To:              "BRL",
		Result:          620,
		Rate:            6.2,
		Source:          "primary",
		FormattedAmount: "$100.00",
		FormattedResult: "R$620.00",
		RateDescription: "1 USD = 6.2000 BRL",
	}, res)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

// --- CreateConversion ---

func TestHandler_CreateConversion_InvalidBody(t *testing.T) {
	cases := map[string]string{
		"not json":      "{",
		"unknown field": `{"amount":"1","from":"USD","to":"BRL","extra":true}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			mockService := new(MockService)
			h := NewConversionHandler(new(MockValidator), mockService)

			req := httptest.NewRequest(http.MethodPost, "/conversions", bytes.NewBufferString(body))
			rr := httptest.NewRecorder()

			h.CreateConversion(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, "invalid request body", decodeError(t, rr))
			mockService.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_CreateConversion_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	body := `{"amount":"R$ 100","from":"usd","to":"brl"}`
	req := httptest.NewRequest(http.MethodPost, "/conversions", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "USD", "BRL").Return(nil).Once()
	mockService.On("Convert", mock.Anything, 100.0, domain.USD, domain.BRL).Return(usdToBrl, nil).Once()

	h.CreateConversion(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res ConversionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.InDelta(t, 620, res.Result, 1e-9)
	mockService.AssertExpectations(t)
}

// --- GetRate ---

func TestHandler_GetRate_ValidationError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/rates/usd/chf", nil), map[string]string{"base": " usd ", "quote": "chf"})
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "USD", "CHF").Return(rate.ErrQuoteUnsupported).Once()

	h.GetRate(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, rate.ErrQuoteUnsupported.Error(), decodeError(t, rr))
	mockService.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetRate_NotFound(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/rates/usd/eur", nil), map[string]string{"base": "usd", "quote": "eur"})
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "USD", "EUR").Return(nil).Once()
	mockService.On("Rate", mock.Anything, domain.USD, domain.EUR).Return(domain.Rate{}, domain.ErrRateUnavailable).Once()

	h.GetRate(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "exchange rate unavailable", decodeError(t, rr))
	mockService.AssertExpectations(t)
}

func TestHandler_GetRate_InternalError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/rates/usd/eur", nil), map[string]string{"base": "usd", "quote": "eur"})
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "USD", "EUR").Return(nil).Once()
	mockService.On("Rate", mock.Anything, domain.USD, domain.EUR).Return(domain.Rate{}, errors.New("boom")).Once()

	h.GetRate(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "ups, couldn't get rate by codes this time", decodeError(t, rr))
}

func TestHandler_GetRate_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewConversionHandler(mockValidator, mockService)

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/rates/eur/eur", nil), map[string]string{"base": "eur", "quote": "eur"})
	rr := httptest.NewRecorder()
	mockValidator.On("ValidateCodes", "EUR", "EUR").Return(nil).Once()
	mockService.On("Rate", mock.Anything, domain.EUR, domain.EUR).
		Return(domain.Rate{Base: domain.EUR, Quote: domain.EUR, Value: 1, Source: domain.SourceIdentity}, nil).Once()

	h.GetRate(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetRateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, GetRateResponse{Base: "EUR", Quote: "EUR", Value: 1, Source: "identity", Description: "same currency selected"}, res)
}

// --- GetSupportedCodes ---

func TestHandler_GetSupportedCodes(t *testing.T) {
	mockValidator := new(MockValidator)
	h := NewConversionHandler(mockValidator, new(MockService))
	mockValidator.On("SupportedCodes").Return([]domain.CurrencyCode{domain.USD, domain.JPY}).Once()

	rr := httptest.NewRecorder()
	h.GetSupportedCodes(rr, httptest.NewRequest(http.MethodGet, "/rates/supported-currencies", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetSupportedCodesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []Currency{
		{Code: "USD", Symbol: "$", Name: "US Dollar"},
		{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	}, res.Currencies)
}

// --- History ---

func TestHandler_GetHistory_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewConversionHandler(new(MockValidator), mockService)

	id := uuid.New()
	createdAt := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	mockService.On("History", mock.Anything).
		Return([]domain.HistoryEntry{{ID: id, Conversion: usdToBrl, CreatedAt: createdAt}}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/history", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetHistoryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Entries, 1)
	require.Equal(t, id.String(), res.Entries[0].ID)
	require.True(t, res.Entries[0].CreatedAt.Equal(createdAt))
	require.Equal(t, "R$620.00", res.Entries[0].Conversion.FormattedResult)
}

func TestHandler_GetHistory_EmptyIsArray(t *testing.T) {
	mockService := new(MockService)
	h := NewConversionHandler(new(MockValidator), mockService)
	mockService.On("History", mock.Anything).Return([]domain.HistoryEntry(nil), nil).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/history", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"entries":[]}`, rr.Body.String())
}

func TestHandler_GetHistory_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewConversionHandler(new(MockValidator), mockService)
	mockService.On("History", mock.Anything).Return(nil, errors.New("db down")).Once()

	rr := httptest.NewRecorder()
	h.GetHistory(rr, httptest.NewRequest(http.MethodGet, "/history", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "ups, couldn't get history this time", decodeError(t, rr))
}

func TestHandler_ClearHistory(t *testing.T) {
	mockService := new(MockService)
	h := NewConversionHandler(new(MockValidator), mockService)
	mockService.On("ClearHistory", mock.Anything).Return(nil).Once()

	rr := httptest.NewRecorder()
	h.ClearHistory(rr, httptest.NewRequest(http.MethodDelete, "/history", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_ClearHistory_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewConversionHandler(new(MockValidator), mockService)
	mockService.On("ClearHistory", mock.Anything).Return(errors.New("db down")).Once()

	rr := httptest.NewRecorder()
	h.ClearHistory(rr, httptest.NewRequest(http.MethodDelete, "/history", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "ups, couldn't clear history this time", decodeError(t, rr))
}
