package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vahanbazar/vahanbazar-backend/internal/catalog"
	"github.com/vahanbazar/vahanbazar-backend/pkg/config"
	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	dbtypes "github.com/vahanbazar/vahanbazar-backend/pkg/db/types"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
	"github.com/vahanbazar/vahanbazar-backend/pkg/metrics"
	"github.com/vahanbazar/vahanbazar-backend/pkg/outbox"
	"github.com/vahanbazar/vahanbazar-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// VehicleSource resolves catalog vehicles when an order is opened.
type VehicleSource interface {
	GetVehicle(ctx context.Context, vehicleType enums.VehicleType, id uuid.UUID) (*models.Vehicle, error)
}

// StockAdjuster decrements vehicle stock inside the settlement transaction.
type StockAdjuster interface {
	Decrement(ctx context.Context, tx *gorm.DB, vehicleID uuid.UUID) (bool, error)
	Remaining(ctx context.Context, tx *gorm.DB, vehicleID uuid.UUID) (int, error)
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	AttachBreakdown(ctx context.Context, orderID uuid.UUID, input BreakdownInput) (*models.Order, error)
	ConfirmPrice(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	AttachFinancing(ctx context.Context, orderID uuid.UUID, input FinancingInput) (*models.Order, error)
	AttachInsurance(ctx context.Context, orderID uuid.UUID, input InsuranceInput) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]models.Order, error)
	Settle(ctx context.Context, input SettleInput) (*models.Order, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	outbox     outboxPublisher
	vehicles   VehicleSource
	stock      StockAdjuster
	settlement config.SettlementConfig
	metrics    *metrics.SettlementMetrics
	logg       *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(
	repo Repository,
	tx txRunner,
	outboxSvc outboxPublisher,
	vehicles VehicleSource,
	stock StockAdjuster,
	settlement config.SettlementConfig,
	settlementMetrics *metrics.SettlementMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle source required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock adjuster required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		outbox:     outboxSvc,
		vehicles:   vehicles,
		stock:      stock,
		settlement: settlement,
		metrics:    settlementMetrics,
		logg:       logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.PurchaserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchaser id required")
	}
	if !input.VehicleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle type")
	}
	if input.VehicleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}

	vehicle, err := s.vehicles.GetVehicle(ctx, input.VehicleType, input.VehicleID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:          uuid.New(),
		PurchaserID: input.PurchaserID,
		DealerID:    vehicle.DealerID,
		VehicleType: input.VehicleType,
		VehicleID:   vehicle.ID,
		BasePrice:   vehicle.ExShowroomPrice,
		Status:      enums.OrderStatusInitiated,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(order),
			Data: payloads.OrderCreatedEvent{
				OrderID:     order.ID,
				PurchaserID: order.PurchaserID,
				DealerID:    order.DealerID,
				VehicleType: order.VehicleType,
				VehicleID:   order.VehicleID,
				BasePrice:   order.BasePrice,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) AttachBreakdown(ctx context.Context, orderID uuid.UUID, input BreakdownInput) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if err := validateBreakdown(input); err != nil {
		return nil, err
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status == enums.OrderStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "price cannot change after settlement")
		}
		if order.Breakdown != nil && order.Breakdown.Confirmed() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "price already confirmed")
		}

		total := breakdownTotal(input)
		if total.Sign() < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds price components")
		}

		breakdown := &models.PriceBreakdown{
			OrderID:      order.ID,
			ExShowroom:   input.ExShowroom,
			Tax:          input.Tax,
			Insurance:    input.Insurance,
			Registration: input.Registration,
			Accessories:  input.Accessories,
			Discount:     input.Discount,
			Total:        total,
		}
		if err := repo.SaveBreakdown(ctx, breakdown); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save price breakdown")
		}

		order.Breakdown = breakdown
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ConfirmPrice(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status == enums.OrderStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "price cannot change after settlement")
		}
		if order.Breakdown == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "price breakdown required before confirmation")
		}

		now := time.Now()
		finalAmount := order.Breakdown.Total
		order.Breakdown.FinalAmount = &finalAmount
		order.Breakdown.ConfirmedAt = &now
		if err := repo.SaveBreakdown(ctx, order.Breakdown); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm price breakdown")
		}

		updates := map[string]any{
			"final_price": finalAmount,
			"status":      enums.OrderStatusPriceConfirmed,
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order.FinalPrice = &finalAmount
		order.Status = enums.OrderStatusPriceConfirmed

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPriceConfirmed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(order),
			Data: payloads.OrderPriceConfirmedEvent{
				OrderID:     order.ID,
				PurchaserID: order.PurchaserID,
				FinalAmount: finalAmount,
				ConfirmedAt: now,
			},
		}); err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) AttachFinancing(ctx context.Context, orderID uuid.UUID, input FinancingInput) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.BankName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank name required")
	}
	if input.TenureYears <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenure must be positive")
	}
	if input.InterestRate.Sign() < 0 || input.DownPayment.Sign() < 0 ||
		input.MonthlyInstallment.Sign() < 0 || input.ProcessingFee.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "financing amounts cannot be negative")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status == enums.OrderStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "selections cannot change after settlement")
		}

		selection := &models.FinancingSelection{
			OrderID:            order.ID,
			BankName:           input.BankName,
			InterestRate:       input.InterestRate,
			TenureYears:        input.TenureYears,
			DownPayment:        input.DownPayment,
			MonthlyInstallment: input.MonthlyInstallment,
			ProcessingFee:      input.ProcessingFee,
		}
		if err := repo.SaveFinancing(ctx, selection); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save financing selection")
		}

		order.Financing = selection
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) AttachInsurance(ctx context.Context, orderID uuid.UUID, input InsuranceInput) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ProviderName == "" || input.PlanName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider and plan names required")
	}
	if input.PremiumAmount.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "premium cannot be negative")
	}
	if input.TenureYears <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenure must be positive")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status == enums.OrderStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "selections cannot change after settlement")
		}

		selection := &models.InsuranceSelection{
			OrderID:       order.ID,
			ProviderName:  input.ProviderName,
			PlanName:      input.PlanName,
			CoverageType:  input.CoverageType,
			PremiumAmount: input.PremiumAmount,
			TenureYears:   input.TenureYears,
			AddonIDs:      dbtypes.UUIDArray(input.AddonIDs),
		}
		if err := repo.SaveInsurance(ctx, selection); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save insurance selection")
		}

		order.Insurance = selection
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return loadOrder(ctx, s.repo, orderID)
}

func (s *service) ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]models.Order, error) {
	if purchaserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchaser id required")
	}
	list, err := s.repo.ListOrdersByPurchaser(ctx, purchaserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func loadOrder(ctx context.Context, repo Repository, orderID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func validateBreakdown(input BreakdownInput) error {
	components := []decimal.Decimal{
		input.ExShowroom,
		input.Tax,
		input.Insurance,
		input.Registration,
		input.Accessories,
		input.Discount,
	}
	for _, value := range components {
		if value.Sign() < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price components cannot be negative")
		}
	}
	return nil
}

func breakdownTotal(input BreakdownInput) decimal.Decimal {
	return input.ExShowroom.
		Add(input.Tax).
		Add(input.Insurance).
		Add(input.Registration).
		Add(input.Accessories).
		Sub(input.Discount)
}

func buildActor(order *models.Order) *outbox.ActorRef {
	dealer := order.DealerID
	return &outbox.ActorRef{
		PurchaserID: order.PurchaserID,
		DealerID:    &dealer,
	}
}

type catalogStockAdjuster struct {
	repo catalog.Repository
}

// NewStockAdjuster adapts the catalog repository for settlement-time decrements.
func NewStockAdjuster(repo catalog.Repository) StockAdjuster {
	return catalogStockAdjuster{repo: repo}
}

func (a catalogStockAdjuster) Decrement(ctx context.Context, tx *gorm.DB, vehicleID uuid.UUID) (bool, error) {
	return a.repo.WithTx(tx).DecrementStock(ctx, vehicleID)
}

func (a catalogStockAdjuster) Remaining(ctx context.Context, tx *gorm.DB, vehicleID uuid.UUID) (int, error) {
	qty, _, err := a.repo.WithTx(tx).CurrentStock(ctx, vehicleID)
	return qty, err
}
