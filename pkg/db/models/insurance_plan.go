package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

// InsuranceProvider is an underwriter whose plans appear in checkout.
type InsuranceProvider struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProviderName         string          `gorm:"column:provider_name;not null"`
	ClaimSettlementRatio decimal.Decimal `gorm:"column:claim_settlement_ratio;type:numeric(5,2);not null"`
	IsActive             bool            `gorm:"column:is_active;not null;default:true"`
	Plans                []InsurancePlan `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
}

// InsurancePlan is a purchasable coverage option for a vehicle type.
type InsurancePlan struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProviderID  uuid.UUID            `gorm:"column:provider_id;type:uuid;not null"`
	VehicleType enums.VehicleType    `gorm:"column:vehicle_type;type:text;not null"`
	PlanName    string               `gorm:"column:plan_name;not null"`
	CoverageType string              `gorm:"column:coverage_type;not null"`
	BasePremium decimal.Decimal      `gorm:"column:base_premium;type:numeric(12,2);not null"`
	TenureYears int                  `gorm:"column:tenure_years;not null"`
	Addons      []InsurancePlanAddon `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// InsurancePlanAddon is an optional rider priced on top of a plan.
type InsurancePlanAddon struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PlanID     uuid.UUID       `gorm:"column:plan_id;type:uuid;not null"`
	AddonName  string          `gorm:"column:addon_name;not null"`
	AddonPrice decimal.Decimal `gorm:"column:addon_price;type:numeric(12,2);not null"`
}
