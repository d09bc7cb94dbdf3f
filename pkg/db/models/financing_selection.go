package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancingSelection is the purchaser's chosen bank offer, persisted verbatim.
// Its presence is what entitles an order to the EMI payment method.
type FinancingSelection struct {
	OrderID            uuid.UUID       `gorm:"column:order_id;type:uuid;primaryKey"`
	BankName           string          `gorm:"column:bank_name;not null"`
	InterestRate       decimal.Decimal `gorm:"column:interest_rate;type:numeric(5,2);not null"`
	TenureYears        int             `gorm:"column:tenure_years;not null"`
	DownPayment        decimal.Decimal `gorm:"column:down_payment;type:numeric(12,2);not null"`
	MonthlyInstallment decimal.Decimal `gorm:"column:monthly_installment;type:numeric(12,2);not null"`
	ProcessingFee      decimal.Decimal `gorm:"column:processing_fee;type:numeric(12,2);not null"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
}
