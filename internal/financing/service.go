package financing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
)

// QuoteInput carries the purchaser's loan parameters.
type QuoteInput struct {
	VehicleType enums.VehicleType
	LoanAmount  decimal.Decimal
	TenureYears int
}

// EmiOption is one bank's offer for the requested loan.
type EmiOption struct {
	BankName           string          `json:"bank_name"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TenureYears        int             `json:"tenure_years"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
	TotalPayable       decimal.Decimal `json:"total_payable"`
}

// Service quotes EMI options from the configured lending partners.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) ([]EmiOption, error)
}

type service struct {
	repo Repository
}

// NewService builds a financing service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("financing repository required")
	}
	return &service{repo: repo}, nil
}

// Quote prices the loan against every active bank whose tenure band covers
// the request. Banks without a matching rate card are skipped, not errored.
func (s *service) Quote(ctx context.Context, input QuoteInput) ([]EmiOption, error) {
	if !input.VehicleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle type")
	}
	if input.LoanAmount.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "loan amount must be positive")
	}
	if input.TenureYears <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenure must be positive")
	}

	rates, err := s.repo.FindActiveRates(ctx, input.VehicleType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bank rates")
	}

	options := make([]EmiOption, 0, len(rates))
	for _, bankRate := range rates {
		rate := bankRate.Rate
		if input.TenureYears < rate.MinTenureYears || input.TenureYears > rate.MaxTenureYears {
			continue
		}
		interestRate := MeanRate(rate.MinInterestRate, rate.MaxInterestRate)
		installment := MonthlyInstallment(input.LoanAmount, interestRate, input.TenureYears)
		months := decimal.NewFromInt(int64(input.TenureYears) * 12)
		options = append(options, EmiOption{
			BankName:           bankRate.BankName,
			InterestRate:       interestRate,
			TenureYears:        input.TenureYears,
			MonthlyInstallment: installment,
			ProcessingFee:      rate.ProcessingFee,
			TotalPayable:       installment.Mul(months).Add(rate.ProcessingFee).Round(2),
		})
	}
	return options, nil
}
