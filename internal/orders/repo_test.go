package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
)

func TestRepositoryPaymentUniquePerOrder(t *testing.T) {
	db := newOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order, err := repo.CreateOrder(ctx, &models.Order{
		PurchaserID: uuid.New(),
		DealerID:    uuid.New(),
		VehicleType: enums.VehicleTypeBike,
		VehicleID:   uuid.New(),
		BasePrice:   decimal.NewFromInt(95000),
		Status:      enums.OrderStatusInitiated,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, order.ID)

	payment := models.Payment{
		OrderID:        order.ID,
		Method:         enums.PaymentMethodUPI,
		SelectedMethod: enums.PaymentMethodUPI,
		Status:         enums.PaymentStatusSuccess,
		Amount:         decimal.NewFromInt(95000),
		TransactionRef: "TXN-test",
	}
	_, err = repo.CreatePayment(ctx, &payment)
	require.NoError(t, err)

	second := payment
	second.ID = uuid.Nil
	_, err = repo.CreatePayment(ctx, &second)
	assert.Error(t, err)
}

func TestRepositoryFindOrderForUpdatePreloads(t *testing.T) {
	db := newOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order, err := repo.CreateOrder(ctx, &models.Order{
		PurchaserID: uuid.New(),
		DealerID:    uuid.New(),
		VehicleType: enums.VehicleTypeCar,
		VehicleID:   uuid.New(),
		BasePrice:   decimal.NewFromInt(700000),
		Status:      enums.OrderStatusInitiated,
	})
	require.NoError(t, err)

	require.NoError(t, repo.SaveBreakdown(ctx, &models.PriceBreakdown{
		OrderID:    order.ID,
		ExShowroom: decimal.NewFromInt(700000),
		Total:      decimal.NewFromInt(700000),
	}))

	locked, err := repo.FindOrderForUpdate(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, locked.Breakdown)
	assert.True(t, locked.Breakdown.Total.Equal(decimal.NewFromInt(700000)))
	assert.Nil(t, locked.Payment)
}
