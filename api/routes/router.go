package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vahanbazar/vahanbazar-backend/api/controllers"
	ordercontrollers "github.com/vahanbazar/vahanbazar-backend/api/controllers/orders"
	"github.com/vahanbazar/vahanbazar-backend/api/middleware"
	"github.com/vahanbazar/vahanbazar-backend/internal/catalog"
	"github.com/vahanbazar/vahanbazar-backend/internal/financing"
	"github.com/vahanbazar/vahanbazar-backend/internal/insurance"
	"github.com/vahanbazar/vahanbazar-backend/internal/orders"
	"github.com/vahanbazar/vahanbazar-backend/pkg/config"
	"github.com/vahanbazar/vahanbazar-backend/pkg/db"
	"github.com/vahanbazar/vahanbazar-backend/pkg/logger"
	"github.com/vahanbazar/vahanbazar-backend/pkg/redis"
)

type RouterParams struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	Registry         prometheus.Gatherer
	CatalogService   catalog.Service
	FinancingService financing.Service
	InsuranceService insurance.Service
	OrdersService    orders.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	var idemStore redis.IdempotencyStore
	var redisPinger redis.Pinger
	if params.Redis != nil {
		idemStore = params.Redis
		redisPinger = params.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DB, redisPinger))
	})

	if params.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/{vehicleType}/{vehicleId}", controllers.VehicleDetail(params.CatalogService, logg))
		})
		r.Get("/finance/emi-options", controllers.EmiOptions(params.FinancingService, logg))
		r.Get("/insurance/plans", controllers.InsurancePlans(params.InsuranceService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.PurchaserContext(logg))
			r.Use(middleware.Idempotency(idemStore, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", ordercontrollers.Create(params.OrdersService, logg))
				r.Get("/", ordercontrollers.List(params.OrdersService, logg))
				r.Route("/{orderId}", func(r chi.Router) {
					r.Get("/", ordercontrollers.Detail(params.OrdersService, logg))
					r.Post("/price", ordercontrollers.AttachPrice(params.OrdersService, logg))
					r.Post("/confirm-price", ordercontrollers.ConfirmPrice(params.OrdersService, logg))
					r.Post("/emi", ordercontrollers.AttachEmi(params.OrdersService, logg))
					r.Post("/insurance", ordercontrollers.AttachInsurance(params.OrdersService, logg))
					r.Post("/pay", ordercontrollers.Pay(params.OrdersService, logg))
				})
			})
		})
	})

	return r
}
