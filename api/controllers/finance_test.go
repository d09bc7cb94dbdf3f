package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vahanbazar/vahanbazar-backend/internal/financing"
	"github.com/vahanbazar/vahanbazar-backend/internal/insurance"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
)

type stubFinancingService struct {
	lastInput financing.QuoteInput
	options   []financing.EmiOption
}

func (s *stubFinancingService) Quote(_ context.Context, input financing.QuoteInput) ([]financing.EmiOption, error) {
	s.lastInput = input
	return s.options, nil
}

type stubInsuranceService struct {
	plans []insurance.PlanOption
}

func (s *stubInsuranceService) Plans(context.Context, enums.VehicleType) ([]insurance.PlanOption, error) {
	return s.plans, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}

func TestEmiOptionsParsesQuery(t *testing.T) {
	stub := &stubFinancingService{options: []financing.EmiOption{{
		BankName:    "HDFC Bank",
		TenureYears: 5,
	}}}
	handler := EmiOptions(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/finance/emi-options?vehicle_type=BIKE&loan_amount=150000&tenure_years=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, enums.VehicleTypeBike, stub.lastInput.VehicleType)
	assert.True(t, stub.lastInput.LoanAmount.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, 5, stub.lastInput.TenureYears)

	var envelope struct {
		Data []financing.EmiOption `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "HDFC Bank", envelope.Data[0].BankName)
}

func TestEmiOptionsValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing vehicle_type", query: "loan_amount=150000&tenure_years=5"},
		{name: "bad vehicle_type", query: "vehicle_type=BOAT&loan_amount=150000&tenure_years=5"},
		{name: "missing loan_amount", query: "vehicle_type=CAR&tenure_years=5"},
		{name: "bad loan_amount", query: "vehicle_type=CAR&loan_amount=lots&tenure_years=5"},
		{name: "missing tenure", query: "vehicle_type=CAR&loan_amount=150000"},
		{name: "tenure above cap", query: "vehicle_type=CAR&loan_amount=150000&tenure_years=20"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := EmiOptions(&stubFinancingService{}, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/finance/emi-options?"+tc.query, nil)
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
		})
	}
}

func TestInsurancePlansRequiresVehicleType(t *testing.T) {
	handler := InsurancePlans(&stubInsuranceService{}, testLogger())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/insurance/plans", nil))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestInsurancePlansReturnsData(t *testing.T) {
	stub := &stubInsuranceService{plans: []insurance.PlanOption{{
		ProviderName: "ICICI Lombard",
		PlanName:     "Comprehensive Plus",
	}}}
	handler := InsurancePlans(stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/insurance/plans?vehicle_type=CAR", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data []insurance.PlanOption `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Comprehensive Plus", envelope.Data[0].PlanName)
}
