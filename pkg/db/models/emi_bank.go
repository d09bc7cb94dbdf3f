package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// EmiBank is a lending partner whose rate cards feed EMI quotes.
type EmiBank struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BankName string    `gorm:"column:bank_name;not null"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"`
	Rates    []EmiBankRate `gorm:"foreignKey:BankID;constraint:OnDelete:CASCADE"`
}

// EmiBankRate is one bank's rate card for a vehicle type and tenure band.
type EmiBankRate struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BankID          uuid.UUID         `gorm:"column:bank_id;type:uuid;not null"`
	VehicleType     enums.VehicleType `gorm:"column:vehicle_type;type:text;not null"`
	MinInterestRate decimal.Decimal   `gorm:"column:min_interest_rate;type:numeric(5,2);not null"`
	MaxInterestRate decimal.Decimal   `gorm:"column:max_interest_rate;type:numeric(5,2);not null"`
	MinTenureYears  int               `gorm:"column:min_tenure_years;not null"`
	MaxTenureYears  int               `gorm:"column:max_tenure_years;not null"`
	ProcessingFee   decimal.Decimal   `gorm:"column:processing_fee;type:numeric(12,2);not null"`
}
