package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vahanbazar/vahanbazar-backend/internal/catalog"
	"github.com/vahanbazar/vahanbazar-backend/pkg/config"
	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
	"github.com/vahanbazar/vahanbazar-backend/pkg/metrics"
	"github.com/vahanbazar/vahanbazar-backend/pkg/outbox"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE vehicles (
			id TEXT PRIMARY KEY,
			vehicle_type TEXT NOT NULL,
			dealer_id TEXT NOT NULL,
			brand TEXT NOT NULL,
			model TEXT NOT NULL,
			ex_showroom_price NUMERIC NOT NULL,
			stock_quantity INTEGER NOT NULL DEFAULT 0,
			stock_status TEXT NOT NULL DEFAULT 'OUT_OF_STOCK',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			purchaser_id TEXT NOT NULL,
			dealer_id TEXT NOT NULL,
			vehicle_type TEXT NOT NULL,
			vehicle_id TEXT NOT NULL,
			base_price NUMERIC NOT NULL,
			final_price NUMERIC,
			status TEXT NOT NULL DEFAULT 'INITIATED',
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE price_breakdowns (
			order_id TEXT PRIMARY KEY,
			ex_showroom NUMERIC NOT NULL,
			tax NUMERIC NOT NULL,
			insurance NUMERIC NOT NULL,
			registration NUMERIC NOT NULL,
			accessories NUMERIC NOT NULL,
			discount NUMERIC NOT NULL,
			total NUMERIC NOT NULL,
			final_amount NUMERIC,
			confirmed_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE financing_selections (
			order_id TEXT PRIMARY KEY,
			bank_name TEXT NOT NULL,
			interest_rate NUMERIC NOT NULL,
			tenure_years INTEGER NOT NULL,
			down_payment NUMERIC NOT NULL,
			monthly_installment NUMERIC NOT NULL,
			processing_fee NUMERIC NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE insurance_selections (
			order_id TEXT PRIMARY KEY,
			provider_name TEXT NOT NULL,
			plan_name TEXT NOT NULL,
			coverage_type TEXT NOT NULL,
			premium_amount NUMERIC NOT NULL,
			tenure_years INTEGER NOT NULL,
			addon_ids TEXT,
			created_at DATETIME
		)`,
		`CREATE TABLE payments (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL UNIQUE,
			method TEXT NOT NULL,
			selected_method TEXT NOT NULL,
			status TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			transaction_ref TEXT NOT NULL,
			paid_at DATETIME NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE outbox_events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			aggregate_type TEXT NOT NULL,
			aggregate_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME,
			published_at DATETIME,
			attempt_count INTEGER NOT NULL DEFAULT 0,
			last_error TEXT
		)`,
	} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	return conn
}

func newTestService(t *testing.T, db *gorm.DB, settlement config.SettlementConfig) Service {
	t.Helper()
	return newTestServiceWithRepo(t, db, settlement, NewRepository(db))
}

func newTestServiceWithRepo(t *testing.T, db *gorm.DB, settlement config.SettlementConfig, repo Repository) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})
	catalogRepo := catalog.NewRepository(db)
	catalogSvc, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)

	svc, err := NewService(
		repo,
		gormTxRunner{db: db},
		outbox.NewService(outbox.NewRepository(db), logg),
		catalogSvc,
		NewStockAdjuster(catalogRepo),
		settlement,
		metrics.NewSettlementMetrics(nil),
		logg,
	)
	require.NoError(t, err)
	return svc
}

func seedVehicle(t *testing.T, db *gorm.DB, stock int) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{
		ID:              uuid.New(),
		VehicleType:     enums.VehicleTypeCar,
		DealerID:        uuid.New(),
		Brand:           "Tata",
		Model:           "Nexon",
		ExShowroomPrice: decimal.NewFromInt(800000),
		StockQuantity:   stock,
		StockStatus:     enums.BucketStock(stock),
	}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

func createTestOrder(t *testing.T, svc Service, vehicle *models.Vehicle) *models.Order {
	t.Helper()
	order, err := svc.Create(context.Background(), CreateOrderInput{
		PurchaserID: uuid.New(),
		VehicleType: vehicle.VehicleType,
		VehicleID:   vehicle.ID,
	})
	require.NoError(t, err)
	return order
}

func countOutboxEvents(t *testing.T, db *gorm.DB, eventType enums.OutboxEventType) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.OutboxEvent{}).
		Where("event_type = ?", eventType).
		Count(&count).Error)
	return count
}

func sampleBreakdown() BreakdownInput {
	return BreakdownInput{
		ExShowroom:   decimal.NewFromInt(800000),
		Tax:          decimal.NewFromInt(96000),
		Insurance:    decimal.NewFromInt(32000),
		Registration: decimal.NewFromInt(12000),
		Accessories:  decimal.NewFromInt(15000),
		Discount:     decimal.NewFromInt(25000),
	}
}

func TestCreateOrderSnapshotsVehicle(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	vehicle := seedVehicle(t, db, 4)

	order := createTestOrder(t, svc, vehicle)

	assert.Equal(t, enums.OrderStatusInitiated, order.Status)
	assert.Equal(t, vehicle.DealerID, order.DealerID)
	assert.True(t, order.BasePrice.Equal(vehicle.ExShowroomPrice))
	assert.Nil(t, order.FinalPrice)
	assert.EqualValues(t, 1, countOutboxEvents(t, db, enums.EventOrderCreated))
}

func TestCreateOrderUnknownVehicle(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})

	_, err := svc.Create(context.Background(), CreateOrderInput{
		PurchaserID: uuid.New(),
		VehicleType: enums.VehicleTypeCar,
		VehicleID:   uuid.New(),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAttachBreakdownComputesTotal(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	order := createTestOrder(t, svc, seedVehicle(t, db, 4))

	updated, err := svc.AttachBreakdown(context.Background(), order.ID, sampleBreakdown())
	require.NoError(t, err)
	require.NotNil(t, updated.Breakdown)
	assert.True(t, updated.Breakdown.Total.Equal(decimal.NewFromInt(930000)),
		"got %s", updated.Breakdown.Total)

	// Re-attaching replaces the row, not duplicates it.
	revised := sampleBreakdown()
	revised.Discount = decimal.NewFromInt(50000)
	updated, err = svc.AttachBreakdown(context.Background(), order.ID, revised)
	require.NoError(t, err)
	assert.True(t, updated.Breakdown.Total.Equal(decimal.NewFromInt(905000)))

	var count int64
	require.NoError(t, db.Model(&models.PriceBreakdown{}).
		Where("order_id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAttachBreakdownRejectsExcessDiscount(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	order := createTestOrder(t, svc, seedVehicle(t, db, 4))

	input := sampleBreakdown()
	input.Discount = decimal.NewFromInt(2000000)
	_, err := svc.AttachBreakdown(context.Background(), order.ID, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestConfirmPriceFreezesTotal(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	order := createTestOrder(t, svc, seedVehicle(t, db, 4))

	_, err := svc.AttachBreakdown(context.Background(), order.ID, sampleBreakdown())
	require.NoError(t, err)

	confirmed, err := svc.ConfirmPrice(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPriceConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.FinalPrice)
	assert.True(t, confirmed.FinalPrice.Equal(decimal.NewFromInt(930000)))
	require.NotNil(t, confirmed.Breakdown.ConfirmedAt)
	assert.EqualValues(t, 1, countOutboxEvents(t, db, enums.EventOrderPriceConfirmed))

	// Confirmed prices are immutable.
	_, err = svc.AttachBreakdown(context.Background(), order.ID, sampleBreakdown())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestConfirmPriceRequiresBreakdown(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	order := createTestOrder(t, svc, seedVehicle(t, db, 4))

	_, err := svc.ConfirmPrice(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAttachFinancingUpserts(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	order := createTestOrder(t, svc, seedVehicle(t, db, 4))

	input := FinancingInput{
		BankName:           "HDFC Bank",
		InterestRate:       decimal.NewFromFloat(9.25),
		TenureYears:        5,
		DownPayment:        decimal.NewFromInt(100000),
		MonthlyInstallment: decimal.NewFromFloat(17316.83),
		ProcessingFee:      decimal.NewFromInt(4999),
	}
	updated, err := svc.AttachFinancing(context.Background(), order.ID, input)
	require.NoError(t, err)
	require.NotNil(t, updated.Financing)
	assert.Equal(t, "HDFC Bank", updated.Financing.BankName)

	input.BankName = "SBI"
	updated, err = svc.AttachFinancing(context.Background(), order.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "SBI", updated.Financing.BankName)

	var count int64
	require.NoError(t, db.Model(&models.FinancingSelection{}).
		Where("order_id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAttachInsuranceStoresAddons(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	order := createTestOrder(t, svc, seedVehicle(t, db, 4))

	addonID := uuid.New()
	updated, err := svc.AttachInsurance(context.Background(), order.ID, InsuranceInput{
		ProviderName:  "Acko General Insurance",
		PlanName:      "Comprehensive Shield",
		CoverageType:  "COMPREHENSIVE",
		PremiumAmount: decimal.NewFromInt(15700),
		TenureYears:   1,
		AddonIDs:      []uuid.UUID{addonID},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Insurance)
	require.Len(t, updated.Insurance.AddonIDs, 1)
	assert.Equal(t, addonID, updated.Insurance.AddonIDs[0])
}

func TestGetUnknownOrder(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListByPurchaser(t *testing.T) {
	db := newOrdersTestDB(t)
	svc := newTestService(t, db, config.SettlementConfig{AllowOversell: true})
	vehicle := seedVehicle(t, db, 4)

	purchaser := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), CreateOrderInput{
			PurchaserID: purchaser,
			VehicleType: vehicle.VehicleType,
			VehicleID:   vehicle.ID,
		})
		require.NoError(t, err)
	}
	createTestOrder(t, svc, vehicle)

	list, err := svc.ListByPurchaser(context.Background(), purchaser)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, order := range list {
		assert.Equal(t, purchaser, order.PurchaserID)
	}
}
