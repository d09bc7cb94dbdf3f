package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/api/responses"
	"github.com/vahanbazar/vahanbazar-backend/api/validators"
	"github.com/vahanbazar/vahanbazar-backend/internal/financing"
	"github.com/vahanbazar/vahanbazar-backend/internal/insurance"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
)

const maxTenureYears = 8

// EmiOptions quotes monthly installments across the active lending partners.
func EmiOptions(svc financing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "financing service unavailable"))
			return
		}

		vehicleType, err := parseVehicleTypeQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawAmount := strings.TrimSpace(r.URL.Query().Get("loan_amount"))
		if rawAmount == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "loan_amount is required"))
			return
		}
		loanAmount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid loan_amount"))
			return
		}

		tenure, err := validators.ParseQueryInt(r, "tenure_years", 0, 1, maxTenureYears)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if tenure == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenure_years is required"))
			return
		}

		options, err := svc.Quote(r.Context(), financing.QuoteInput{
			VehicleType: vehicleType,
			LoanAmount:  loanAmount,
			TenureYears: tenure,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, options)
	}
}

// InsurancePlans lists purchasable plans with their addons.
func InsurancePlans(svc insurance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insurance service unavailable"))
			return
		}

		vehicleType, err := parseVehicleTypeQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plans, err := svc.Plans(r.Context(), vehicleType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plans)
	}
}

func parseVehicleTypeQuery(r *http.Request) (enums.VehicleType, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("vehicle_type"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "vehicle_type is required")
	}
	vehicleType, err := enums.ParseVehicleType(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle_type")
	}
	return vehicleType, nil
}
