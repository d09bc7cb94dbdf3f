package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

type orderResponse struct {
	ID          uuid.UUID          `json:"id"`
	PurchaserID uuid.UUID          `json:"purchaser_id"`
	DealerID    uuid.UUID          `json:"dealer_id"`
	VehicleType enums.VehicleType  `json:"vehicle_type"`
	VehicleID   uuid.UUID          `json:"vehicle_id"`
	BasePrice   decimal.Decimal    `json:"base_price"`
	FinalPrice  *decimal.Decimal   `json:"final_price,omitempty"`
	Status      enums.OrderStatus  `json:"status"`
	Breakdown   *breakdownResponse `json:"price_breakdown,omitempty"`
	Financing   *financingResponse `json:"financing,omitempty"`
	Insurance   *insuranceResponse `json:"insurance,omitempty"`
	Payment     *paymentResponse   `json:"payment,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type breakdownResponse struct {
	ExShowroom   decimal.Decimal  `json:"ex_showroom"`
	Tax          decimal.Decimal  `json:"tax"`
	Insurance    decimal.Decimal  `json:"insurance"`
	Registration decimal.Decimal  `json:"registration"`
	Accessories  decimal.Decimal  `json:"accessories"`
	Discount     decimal.Decimal  `json:"discount"`
	Total        decimal.Decimal  `json:"total"`
	FinalAmount  *decimal.Decimal `json:"final_amount,omitempty"`
	ConfirmedAt  *time.Time       `json:"confirmed_at,omitempty"`
}

type financingResponse struct {
	BankName           string          `json:"bank_name"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TenureYears        int             `json:"tenure_years"`
	DownPayment        decimal.Decimal `json:"down_payment"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
}

type insuranceResponse struct {
	ProviderName  string          `json:"provider_name"`
	PlanName      string          `json:"plan_name"`
	CoverageType  string          `json:"coverage_type"`
	PremiumAmount decimal.Decimal `json:"premium_amount"`
	TenureYears   int             `json:"tenure_years"`
	AddonIDs      []uuid.UUID     `json:"addon_ids,omitempty"`
}

type paymentResponse struct {
	Method         enums.PaymentMethod `json:"method"`
	SelectedMethod enums.PaymentMethod `json:"selected_method"`
	Status         enums.PaymentStatus `json:"status"`
	Amount         decimal.Decimal     `json:"amount"`
	TransactionRef string              `json:"transaction_ref"`
	PaidAt         time.Time           `json:"paid_at"`
}

func toOrderResponse(order *models.Order) *orderResponse {
	if order == nil {
		return nil
	}
	resp := &orderResponse{
		ID:          order.ID,
		PurchaserID: order.PurchaserID,
		DealerID:    order.DealerID,
		VehicleType: order.VehicleType,
		VehicleID:   order.VehicleID,
		BasePrice:   order.BasePrice,
		FinalPrice:  order.FinalPrice,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if b := order.Breakdown; b != nil {
		resp.Breakdown = &breakdownResponse{
			ExShowroom:   b.ExShowroom,
			Tax:          b.Tax,
			Insurance:    b.Insurance,
			Registration: b.Registration,
			Accessories:  b.Accessories,
			Discount:     b.Discount,
			Total:        b.Total,
			FinalAmount:  b.FinalAmount,
			ConfirmedAt:  b.ConfirmedAt,
		}
	}
	if f := order.Financing; f != nil {
		resp.Financing = &financingResponse{
			BankName:           f.BankName,
			InterestRate:       f.InterestRate,
			TenureYears:        f.TenureYears,
			DownPayment:        f.DownPayment,
			MonthlyInstallment: f.MonthlyInstallment,
			ProcessingFee:      f.ProcessingFee,
		}
	}
	if i := order.Insurance; i != nil {
		resp.Insurance = &insuranceResponse{
			ProviderName:  i.ProviderName,
			PlanName:      i.PlanName,
			CoverageType:  i.CoverageType,
			PremiumAmount: i.PremiumAmount,
			TenureYears:   i.TenureYears,
			AddonIDs:      i.AddonIDs,
		}
	}
	if p := order.Payment; p != nil {
		resp.Payment = &paymentResponse{
			Method:         p.Method,
			SelectedMethod: p.SelectedMethod,
			Status:         p.Status,
			Amount:         p.Amount,
			TransactionRef: p.TransactionRef,
			PaidAt:         p.PaidAt,
		}
	}
	return resp
}

func toOrderResponses(list []models.Order) []*orderResponse {
	out := make([]*orderResponse, 0, len(list))
	for i := range list {
		out = append(out, toOrderResponse(&list[i]))
	}
	return out
}
