package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// Order anchors a single checkout: one purchaser, one vehicle, one dealer.
// BasePrice is the catalog snapshot taken at checkout time and is never
// re-read; FinalPrice stays nil until price confirmation or settlement.
type Order struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaserID uuid.UUID          `gorm:"column:purchaser_id;type:uuid;not null"`
	DealerID    uuid.UUID          `gorm:"column:dealer_id;type:uuid;not null"`
	VehicleType enums.VehicleType  `gorm:"column:vehicle_type;type:text;not null"`
	VehicleID   uuid.UUID          `gorm:"column:vehicle_id;type:uuid;not null"`
	BasePrice   decimal.Decimal    `gorm:"column:base_price;type:numeric(12,2);not null"`
	FinalPrice  *decimal.Decimal   `gorm:"column:final_price;type:numeric(12,2)"`
	Status      enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'INITIATED'"`
	Breakdown   *PriceBreakdown    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Financing   *FinancingSelection `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Insurance   *InsuranceSelection `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment     *Payment           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
