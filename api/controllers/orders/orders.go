package orders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/api/middleware"
	"github.com/vahanbazar/vahanbazar-backend/api/responses"
	"github.com/vahanbazar/vahanbazar-backend/api/validators"
	internalorders "github.com/vahanbazar/vahanbazar-backend/internal/orders"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
)

// Create opens a checkout for one vehicle.
func Create(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		purchaserID, err := parsePurchaserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicleType, err := enums.ParseVehicleType(payload.VehicleType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle_type"))
			return
		}
		vehicleID, err := uuid.Parse(payload.VehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle_id"))
			return
		}

		order, err := svc.Create(r.Context(), internalorders.CreateOrderInput{
			PurchaserID: purchaserID,
			VehicleType: vehicleType,
			VehicleID:   vehicleID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderResponse(order))
	}
}

// AttachPrice upserts the itemized price breakdown on an unsettled order.
func AttachPrice(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := ownedOrderID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload priceBreakdownRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.AttachBreakdown(r.Context(), orderID, internalorders.BreakdownInput{
			ExShowroom:   payload.ExShowroom,
			Tax:          payload.Tax,
			Insurance:    payload.Insurance,
			Registration: payload.Registration,
			Accessories:  payload.Accessories,
			Discount:     payload.Discount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// ConfirmPrice freezes the breakdown into the order's final price.
func ConfirmPrice(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := ownedOrderID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ConfirmPrice(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// AttachEmi records the bank offer the purchaser picked.
func AttachEmi(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := ownedOrderID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload financingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.AttachFinancing(r.Context(), orderID, internalorders.FinancingInput{
			BankName:           payload.BankName,
			InterestRate:       payload.InterestRate,
			TenureYears:        payload.TenureYears,
			DownPayment:        payload.DownPayment,
			MonthlyInstallment: payload.MonthlyInstallment,
			ProcessingFee:      payload.ProcessingFee,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// AttachInsurance records the plan the purchaser picked.
func AttachInsurance(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := ownedOrderID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload insuranceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addonIDs := make([]uuid.UUID, 0, len(payload.AddonIDs))
		for _, raw := range payload.AddonIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid addon id"))
				return
			}
			addonIDs = append(addonIDs, id)
		}

		order, err := svc.AttachInsurance(r.Context(), orderID, internalorders.InsuranceInput{
			ProviderName:  payload.ProviderName,
			PlanName:      payload.PlanName,
			CoverageType:  payload.CoverageType,
			PremiumAmount: payload.PremiumAmount,
			TenureYears:   payload.TenureYears,
			AddonIDs:      addonIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// Pay settles the order through the requested payment method.
func Pay(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := ownedOrderID(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload payRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		order, err := svc.Settle(r.Context(), internalorders.SettleInput{
			OrderID:    orderID,
			Method:     method,
			PaidAmount: payload.PaidAmount,
			Amount:     payload.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// Detail returns the full order after checking purchaser ownership.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		purchaserID, err := parsePurchaserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order.PurchaserID != purchaserID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, toOrderResponse(order))
	}
}

// List returns the purchaser's orders, newest first.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		purchaserID, err := parsePurchaserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByPurchaser(r.Context(), purchaserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponses(list))
	}
}

type createOrderRequest struct {
	VehicleType string `json:"vehicle_type" validate:"required"`
	VehicleID   string `json:"vehicle_id" validate:"required,uuid4"`
}

type priceBreakdownRequest struct {
	ExShowroom   decimal.Decimal `json:"ex_showroom"`
	Tax          decimal.Decimal `json:"tax"`
	Insurance    decimal.Decimal `json:"insurance"`
	Registration decimal.Decimal `json:"registration"`
	Accessories  decimal.Decimal `json:"accessories"`
	Discount     decimal.Decimal `json:"discount"`
}

type financingRequest struct {
	BankName           string          `json:"bank_name" validate:"required"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TenureYears        int             `json:"tenure_years" validate:"required,min=1"`
	DownPayment        decimal.Decimal `json:"down_payment"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
}

type insuranceRequest struct {
	ProviderName  string          `json:"provider_name" validate:"required"`
	PlanName      string          `json:"plan_name" validate:"required"`
	CoverageType  string          `json:"coverage_type" validate:"required"`
	PremiumAmount decimal.Decimal `json:"premium_amount"`
	TenureYears   int             `json:"tenure_years" validate:"required,min=1"`
	AddonIDs      []string        `json:"addon_ids,omitempty"`
}

type payRequest struct {
	Method     string           `json:"method" validate:"required"`
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
}

func parsePurchaserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.PurchaserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "purchaser context missing")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purchaser id")
	}
	return parsed, nil
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return parsed, nil
}

// ownedOrderID resolves the path order id and verifies it belongs to the
// purchaser on the request before any mutation runs.
func ownedOrderID(r *http.Request, svc internalorders.Service) (uuid.UUID, error) {
	purchaserID, err := parsePurchaserID(r)
	if err != nil {
		return uuid.Nil, err
	}
	orderID, err := parseOrderID(r)
	if err != nil {
		return uuid.Nil, err
	}
	order, err := svc.Get(r.Context(), orderID)
	if err != nil {
		return uuid.Nil, err
	}
	if order.PurchaserID != purchaserID {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return orderID, nil
}
