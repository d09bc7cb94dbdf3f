package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// CreateOrderInput opens a checkout for one vehicle.
type CreateOrderInput struct {
	PurchaserID uuid.UUID
	VehicleType enums.VehicleType
	VehicleID   uuid.UUID
}

// BreakdownInput itemizes the quoted price. Total is computed server-side.
type BreakdownInput struct {
	ExShowroom   decimal.Decimal
	Tax          decimal.Decimal
	Insurance    decimal.Decimal
	Registration decimal.Decimal
	Accessories  decimal.Decimal
	Discount     decimal.Decimal
}

// FinancingInput records the bank offer the purchaser picked.
type FinancingInput struct {
	BankName           string
	InterestRate       decimal.Decimal
	TenureYears        int
	DownPayment        decimal.Decimal
	MonthlyInstallment decimal.Decimal
	ProcessingFee      decimal.Decimal
}

// InsuranceInput records the plan the purchaser picked.
type InsuranceInput struct {
	ProviderName  string
	PlanName      string
	CoverageType  string
	PremiumAmount decimal.Decimal
	TenureYears   int
	AddonIDs      []uuid.UUID
}

// SettleInput carries the payment request. PaidAmount wins over Amount when
// both are present; with neither, settlement falls back to the order's own
// pricing.
type SettleInput struct {
	OrderID    uuid.UUID
	Method     enums.PaymentMethod
	PaidAmount *decimal.Decimal
	Amount     *decimal.Decimal
}
