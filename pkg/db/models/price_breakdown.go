package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceBreakdown itemizes the cost components behind an order's total. Total
// is always recomputed server-side from the components; FinalAmount and
// ConfirmedAt are written only when the price is confirmed.
type PriceBreakdown struct {
	OrderID     uuid.UUID        `gorm:"column:order_id;type:uuid;primaryKey"`
	ExShowroom  decimal.Decimal  `gorm:"column:ex_showroom;type:numeric(12,2);not null"`
	Tax         decimal.Decimal  `gorm:"column:tax;type:numeric(12,2);not null"`
	Insurance   decimal.Decimal  `gorm:"column:insurance;type:numeric(12,2);not null"`
	Registration decimal.Decimal `gorm:"column:registration;type:numeric(12,2);not null"`
	Accessories decimal.Decimal  `gorm:"column:accessories;type:numeric(12,2);not null"`
	Discount    decimal.Decimal  `gorm:"column:discount;type:numeric(12,2);not null"`
	Total       decimal.Decimal  `gorm:"column:total;type:numeric(12,2);not null"`
	FinalAmount *decimal.Decimal `gorm:"column:final_amount;type:numeric(12,2)"`
	ConfirmedAt *time.Time       `gorm:"column:confirmed_at"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// Confirmed reports whether the breakdown has been frozen into a final amount.
func (p PriceBreakdown) Confirmed() bool {
	return p.ConfirmedAt != nil
}
