package insurance

import (
	"context"

	"gorm.io/gorm"

	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// ProviderPlans groups a provider with its plans for one vehicle type.
type ProviderPlans struct {
	Provider models.InsuranceProvider
	Plans    []models.InsurancePlan
}

// Repository exposes the insurance reference data behind plan listings.
type Repository interface {
	FindActivePlans(ctx context.Context, vehicleType enums.VehicleType) ([]ProviderPlans, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an insurance repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActivePlans(ctx context.Context, vehicleType enums.VehicleType) ([]ProviderPlans, error) {
	var providers []models.InsuranceProvider
	err := r.db.WithContext(ctx).
		Preload("Plans", "vehicle_type = ?", vehicleType).
		Preload("Plans.Addons").
		Where("is_active = ?", true).
		Order("provider_name ASC").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}

	grouped := make([]ProviderPlans, 0, len(providers))
	for _, provider := range providers {
		if len(provider.Plans) == 0 {
			continue
		}
		plans := provider.Plans
		provider.Plans = nil
		grouped = append(grouped, ProviderPlans{Provider: provider, Plans: plans})
	}
	return grouped, nil
}
