package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalorders "github.com/vahanbazar/vahanbazar-backend/internal/orders"
	"github.com/vahanbazar/vahanbazar-backend/pkg/config"
	"github.com/vahanbazar/vahanbazar-backend/pkg/db/models"
	"github.com/vahanbazar/vahanbazar-backend/pkg/enums"
	pkgerrors "github.com/vahanbazar/vahanbazar-backend/pkg/errors"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
)

type stubOrdersService struct {
	lastCreate internalorders.CreateOrderInput
}

func (s *stubOrdersService) Create(_ context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
	s.lastCreate = input
	return &models.Order{
		ID:          uuid.New(),
		PurchaserID: input.PurchaserID,
		DealerID:    uuid.New(),
		VehicleType: input.VehicleType,
		VehicleID:   input.VehicleID,
		Status:      enums.OrderStatusInitiated,
	}, nil
}

func (s *stubOrdersService) AttachBreakdown(context.Context, uuid.UUID, internalorders.BreakdownInput) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *stubOrdersService) ConfirmPrice(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *stubOrdersService) AttachFinancing(context.Context, uuid.UUID, internalorders.FinancingInput) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *stubOrdersService) AttachInsurance(context.Context, uuid.UUID, internalorders.InsuranceInput) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *stubOrdersService) Get(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *stubOrdersService) ListByPurchaser(context.Context, uuid.UUID) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (s *stubOrdersService) Settle(context.Context, internalorders.SettleInput) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func newTestRouter(t *testing.T, ordersSvc internalorders.Service) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(RouterParams{
		Config:        cfg,
		Logger:        logg,
		OrdersService: ordersSvc,
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, &stubOrdersService{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "test", resp.Header().Get("X-VahanBazar-Env"))
}

func TestHealthReadyWithoutDependencies(t *testing.T) {
	router := newTestRouter(t, &stubOrdersService{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, resp.Code)
}

func TestOrdersRequirePurchaserHeader(t *testing.T) {
	router := newTestRouter(t, &stubOrdersService{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestOrdersRejectMalformedPurchaserHeader(t *testing.T) {
	router := newTestRouter(t, &stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("X-Purchaser-Id", "not-a-uuid")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateOrderRoutesToService(t *testing.T) {
	stub := &stubOrdersService{}
	router := newTestRouter(t, stub)

	purchaserID := uuid.New()
	vehicleID := uuid.New()
	body := `{"vehicle_type":"CAR","vehicle_id":"` + vehicleID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Purchaser-Id", purchaserID.String())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, purchaserID, stub.lastCreate.PurchaserID)
	assert.Equal(t, enums.VehicleTypeCar, stub.lastCreate.VehicleType)
	assert.Equal(t, vehicleID, stub.lastCreate.VehicleID)

	var envelope struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "INITIATED", envelope.Data.Status)
}

func TestOrderDetailMapsNotFound(t *testing.T) {
	router := newTestRouter(t, &stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil)
	req.Header.Set("X-Purchaser-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t, &stubOrdersService{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v2/orders", nil))

	require.Equal(t, http.StatusNotFound, resp.Code)
}
