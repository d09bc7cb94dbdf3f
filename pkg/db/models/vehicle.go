package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// Vehicle is the catalog row settlement decrements. StockStatus is derived
// from StockQuantity in the same write that changes the quantity.
type Vehicle struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleType     enums.VehicleType `gorm:"column:vehicle_type;type:text;not null"`
	DealerID        uuid.UUID         `gorm:"column:dealer_id;type:uuid;not null"`
	Brand           string            `gorm:"column:brand;not null"`
	Model           string            `gorm:"column:model;not null"`
	ExShowroomPrice decimal.Decimal   `gorm:"column:ex_showroom_price;type:numeric(12,2);not null"`
	StockQuantity   int               `gorm:"column:stock_quantity;not null;default:0"`
	StockStatus     enums.StockStatus `gorm:"column:stock_status;type:text;not null;default:'OUT_OF_STOCK'"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
