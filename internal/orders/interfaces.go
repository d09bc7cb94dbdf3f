package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
)

// Repository covers the order aggregate persistence surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOrderForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error

	SaveBreakdown(ctx context.Context, breakdown *models.PriceBreakdown) error
	SaveFinancing(ctx context.Context, selection *models.FinancingSelection) error
	SaveInsurance(ctx context.Context, selection *models.InsuranceSelection) error

	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
}
