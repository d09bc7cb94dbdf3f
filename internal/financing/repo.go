package financing

import (
	"context"

	"gorm.io/gorm"

	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// BankRate is one lender's rate card joined with its bank name.
type BankRate struct {
	BankName string
	Rate     models.EmiBankRate
}

// Repository exposes the lending reference data behind EMI quotes.
type Repository interface {
	FindActiveRates(ctx context.Context, vehicleType enums.VehicleType) ([]BankRate, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a financing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveRates(ctx context.Context, vehicleType enums.VehicleType) ([]BankRate, error) {
	var banks []models.EmiBank
	err := r.db.WithContext(ctx).
		Preload("Rates", "vehicle_type = ?", vehicleType).
		Where("is_active = ?", true).
		Order("bank_name ASC").
		Find(&banks).Error
	if err != nil {
		return nil, err
	}

	rates := make([]BankRate, 0, len(banks))
	for _, bank := range banks {
		for _, rate := range bank.Rates {
			rates = append(rates, BankRate{BankName: bank.BankName, Rate: rate})
		}
	}
	return rates, nil
}
