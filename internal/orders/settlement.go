package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
	"github.com/vahanbazar/vahanbazar-backend/pkg/outbox"
	"github.com/vahanbazar/vahanbazar-backend/pkg/outbox/payloads"
)

const (
	settlementOutcomeSuccess  = "success"
	settlementOutcomeRejected = "rejected"
	settlementOutcomeFailed   = "failed"
)

// Settle charges the order and marks it PAID in a single transaction. The
// order row is locked for the duration so concurrent attempts serialize; the
// loser sees a PAID order and gets a state conflict. A FAILED order may be
// retried.
func (s *service) Settle(ctx context.Context, input SettleInput) (*models.Order, error) {
	start := time.Now()

	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.PaidAmount != nil && input.PaidAmount.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid amount cannot be negative")
	}
	if input.Amount != nil && input.Amount.Sign() < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
	}

	// Cheap pre-check before taking the row lock.
	if input.Method == enums.PaymentMethodEMI {
		order, err := loadOrder(ctx, s.repo, input.OrderID)
		if err != nil {
			return nil, err
		}
		if order.Financing == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "EMI settlement requires a financing selection")
		}
	}

	txCtx := ctx
	if s.settlement.LockTimeout > 0 {
		var cancel context.CancelFunc
		txCtx, cancel = context.WithTimeout(ctx, s.settlement.LockTimeout)
		defer cancel()
	}

	var result *models.Order
	err := s.tx.WithTx(txCtx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderForUpdate(txCtx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock order")
		}
		if order.Status == enums.OrderStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already settled")
		}
		if input.Method == enums.PaymentMethodEMI && order.Financing == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "EMI settlement requires a financing selection")
		}

		amount := resolveAmount(input, order)
		charged := input.Method.ChargedVia()
		now := time.Now()

		decremented, err := s.stock.Decrement(txCtx, tx, order.VehicleID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !decremented {
			if !s.settlement.AllowOversell {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle out of stock")
			}
			logCtx := s.logg.WithVehicleID(s.logg.WithOrderID(txCtx, order.ID.String()), order.VehicleID.String())
			s.logg.Warn(logCtx, "settling with exhausted stock")
			s.metrics.IncStockSkip()
		}

		payment := &models.Payment{
			ID:             uuid.New(),
			OrderID:        order.ID,
			Method:         charged,
			SelectedMethod: input.Method,
			Status:         enums.PaymentStatusSuccess,
			Amount:         amount,
			TransactionRef: newTransactionRef(),
			PaidAt:         now,
		}
		if _, err := repo.CreatePayment(txCtx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
		}

		updates := map[string]any{"status": enums.OrderStatusPaid}
		if order.FinalPrice == nil {
			updates["final_price"] = amount
		}
		if err := repo.UpdateOrder(txCtx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
		}
		order.Status = enums.OrderStatusPaid
		if order.FinalPrice == nil {
			order.FinalPrice = &amount
		}
		order.Payment = payment

		if err := s.outbox.Emit(txCtx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPaid,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(order),
			Data: payloads.OrderPaidEvent{
				OrderID:        order.ID,
				PurchaserID:    order.PurchaserID,
				DealerID:       order.DealerID,
				VehicleID:      order.VehicleID,
				Method:         payment.Method,
				SelectedMethod: payment.SelectedMethod,
				Amount:         payment.Amount,
				TransactionRef: payment.TransactionRef,
				PaidAt:         payment.PaidAt,
			},
		}); err != nil {
			return err
		}

		if decremented {
			remaining, err := s.stock.Remaining(txCtx, tx, order.VehicleID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read remaining stock")
			}
			if remaining == 0 {
				if err := s.outbox.Emit(txCtx, tx, outbox.DomainEvent{
					EventType:     enums.EventStockDepleted,
					AggregateType: enums.AggregateVehicle,
					AggregateID:   order.VehicleID,
					Version:       1,
					Actor:         buildActor(order),
					Data: payloads.StockDepletedEvent{
						VehicleID:   order.VehicleID,
						VehicleType: order.VehicleType,
						DealerID:    order.DealerID,
						DepletedAt:  now,
					},
				}); err != nil {
					return err
				}
			}
		}

		result = order
		return nil
	})

	elapsed := time.Since(start)
	s.metrics.ObserveDuration(input.Method.String(), elapsed)

	if err != nil {
		outcome := settlementOutcomeRejected
		if typed := pkgerrors.As(err); typed != nil {
			switch typed.Code() {
			case pkgerrors.CodeDependency, pkgerrors.CodeInternal:
				outcome = settlementOutcomeFailed
				s.markFailed(ctx, input.OrderID, typed.Error())
			}
		} else {
			outcome = settlementOutcomeFailed
			s.markFailed(ctx, input.OrderID, err.Error())
		}
		s.metrics.IncSettlement(input.Method.String(), outcome)
		return nil, err
	}

	s.metrics.IncSettlement(input.Method.String(), settlementOutcomeSuccess)
	return result, nil
}

// markFailed records a failed attempt after the settlement transaction rolled
// back. Best effort: a failure here only costs the FAILED marker.
func (s *service) markFailed(ctx context.Context, orderID uuid.UUID, reason string) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status == enums.OrderStatusPaid {
			return nil
		}
		if err := repo.UpdateOrder(ctx, orderID, map[string]any{"status": enums.OrderStatusFailed}); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderFailed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(order),
			Data: payloads.OrderFailedEvent{
				OrderID:     order.ID,
				PurchaserID: order.PurchaserID,
				Reason:      reason,
				FailedAt:    time.Now(),
			},
		})
	})
	if err != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, orderID.String()), "mark order failed", err)
	}
}

// resolveAmount picks the charge amount: the caller's explicit amounts win,
// then the order's own pricing, then zero for fully discounted orders.
func resolveAmount(input SettleInput, order *models.Order) decimal.Decimal {
	if input.PaidAmount != nil {
		return *input.PaidAmount
	}
	if input.Amount != nil {
		return *input.Amount
	}
	if order.Breakdown != nil {
		return order.Breakdown.Total
	}
	if order.FinalPrice != nil {
		return *order.FinalPrice
	}
	if order.BasePrice.Sign() > 0 {
		return order.BasePrice
	}
	return decimal.Zero
}

func newTransactionRef() string {
	return fmt.Sprintf("TXN-%s", uuid.NewString())
}
