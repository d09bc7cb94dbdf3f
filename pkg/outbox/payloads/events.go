package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// OrderCreatedEvent signals a new checkout was opened for a vehicle.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	PurchaserID uuid.UUID         `json:"purchaser_id"`
	DealerID    uuid.UUID         `json:"dealer_id"`
	VehicleType enums.VehicleType `json:"vehicle_type"`
	VehicleID   uuid.UUID         `json:"vehicle_id"`
	BasePrice   decimal.Decimal   `json:"base_price"`
}

// OrderPriceConfirmedEvent is emitted when the itemized price is frozen.
type OrderPriceConfirmedEvent struct {
	OrderID     uuid.UUID       `json:"order_id"`
	PurchaserID uuid.UUID       `json:"purchaser_id"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}

// OrderPaidEvent is emitted exactly once when settlement succeeds.
type OrderPaidEvent struct {
	OrderID        uuid.UUID           `json:"order_id"`
	PurchaserID    uuid.UUID           `json:"purchaser_id"`
	DealerID       uuid.UUID           `json:"dealer_id"`
	VehicleID      uuid.UUID           `json:"vehicle_id"`
	Method         enums.PaymentMethod `json:"method"`
	SelectedMethod enums.PaymentMethod `json:"selected_method"`
	Amount         decimal.Decimal     `json:"amount"`
	TransactionRef string              `json:"transaction_ref"`
	PaidAt         time.Time           `json:"paid_at"`
}

// OrderFailedEvent reports a settlement attempt that could not complete.
type OrderFailedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	PurchaserID uuid.UUID `json:"purchaser_id"`
	Reason      string    `json:"reason"`
	FailedAt    time.Time `json:"failed_at"`
}

// StockDepletedEvent tells downstream systems a vehicle just sold out.
type StockDepletedEvent struct {
	VehicleID   uuid.UUID         `json:"vehicle_id"`
	VehicleType enums.VehicleType `json:"vehicle_type"`
	DealerID    uuid.UUID         `json:"dealer_id"`
	DepletedAt  time.Time         `json:"depleted_at"`
}
