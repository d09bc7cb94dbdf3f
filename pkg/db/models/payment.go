package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// Payment is created exactly once per order by settlement. Method is the rail
// the amount was actually charged through; SelectedMethod preserves the
// purchaser's intent (EMI selections are charged via CARD).
type Payment struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_payments_order_id"`
	Method         enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	SelectedMethod enums.PaymentMethod `gorm:"column:selected_method;type:text;not null"`
	Status         enums.PaymentStatus `gorm:"column:status;type:text;not null"`
	Amount         decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	TransactionRef string              `gorm:"column:transaction_ref;not null"`
	PaidAt         time.Time           `gorm:"column:paid_at;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
}
