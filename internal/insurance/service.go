package insurance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
)

// PlanAddon is an optional rider offered on top of a plan.
type PlanAddon struct {
	ID         uuid.UUID       `json:"id"`
	AddonName  string          `json:"addon_name"`
	AddonPrice decimal.Decimal `json:"addon_price"`
}

// PlanOption is one purchasable plan from one provider.
type PlanOption struct {
	PlanID               uuid.UUID       `json:"plan_id"`
	ProviderName         string          `json:"provider_name"`
	ClaimSettlementRatio decimal.Decimal `json:"claim_settlement_ratio"`
	PlanName             string          `json:"plan_name"`
	CoverageType         string          `json:"coverage_type"`
	BasePremium          decimal.Decimal `json:"base_premium"`
	TenureYears          int             `json:"tenure_years"`
	Addons               []PlanAddon     `json:"addons"`
}

// Service lists insurance plans for checkout.
type Service interface {
	Plans(ctx context.Context, vehicleType enums.VehicleType) ([]PlanOption, error)
}

type service struct {
	repo Repository
}

// NewService builds an insurance service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("insurance repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Plans(ctx context.Context, vehicleType enums.VehicleType) ([]PlanOption, error) {
	if !vehicleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle type")
	}

	grouped, err := s.repo.FindActivePlans(ctx, vehicleType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load insurance plans")
	}

	options := []PlanOption{}
	for _, entry := range grouped {
		for _, plan := range entry.Plans {
			addons := make([]PlanAddon, 0, len(plan.Addons))
			for _, addon := range plan.Addons {
				addons = append(addons, PlanAddon{
					ID:         addon.ID,
					AddonName:  addon.AddonName,
					AddonPrice: addon.AddonPrice,
				})
			}
			options = append(options, PlanOption{
				PlanID:               plan.ID,
				ProviderName:         entry.Provider.ProviderName,
				ClaimSettlementRatio: entry.Provider.ClaimSettlementRatio,
				PlanName:             plan.PlanName,
				CoverageType:         plan.CoverageType,
				BasePremium:          plan.BasePremium,
				TenureYears:          plan.TenureYears,
				Addons:               addons,
			})
		}
	}
	return options, nil
}
