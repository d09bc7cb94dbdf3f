package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/vahanbazar/vahanbazar-backend/pkg/db/types"
)

// InsuranceSelection is the purchaser's chosen plan, persisted verbatim.
// AddonIDs records which optional riders were taken; the premium already
// includes their prices.
type InsuranceSelection struct {
	OrderID       uuid.UUID          `gorm:"column:order_id;type:uuid;primaryKey"`
	ProviderName  string             `gorm:"column:provider_name;not null"`
	PlanName      string             `gorm:"column:plan_name;not null"`
	CoverageType  string             `gorm:"column:coverage_type;not null"`
	PremiumAmount decimal.Decimal    `gorm:"column:premium_amount;type:numeric(12,2);not null"`
	TenureYears   int                `gorm:"column:tenure_years;not null"`
	AddonIDs      dbtypes.UUIDArray  `gorm:"column:addon_ids;type:uuid[]"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}
