// Локальный HTTP API над хранилищами пользователей.
//
// GET    /api/v1/health
// GET    /api/v1/tenants/{tenant}/transactions
// POST   /api/v1/tenants/{tenant}/transactions
// GET    /api/v1/tenants/{tenant}/transactions/{id}
// PUT    /api/v1/tenants/{tenant}/transactions/{id}
// DELETE /api/v1/tenants/{tenant}/transactions/{id}
// GET    /api/v1/tenants/{tenant}/accounts
// POST   /api/v1/tenants/{tenant}/accounts
// DELETE /api/v1/tenants/{tenant}/accounts/{id}
// GET    /api/v1/tenants/{tenant}/budget
// GET|PUT|DELETE /api/v1/tenants/{tenant}/budget/{category}
// GET|PUT /api/v1/tenants/{tenant}/profile
// GET    /api/v1/tenants/{tenant}/insights
// POST   /api/v1/tenants/{tenant}/rename

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "smartmoney/internal/app/server/api/http/health"
	ledgerAPI "smartmoney/internal/app/server/api/http/ledger"
	"smartmoney/internal/app/server/api/http/middleware"
	"smartmoney/internal/app/server/api/http/middleware/logger"
	tenantAPI "smartmoney/internal/app/server/api/http/tenant"
	"smartmoney/internal/domain/ledger"
	"smartmoney/internal/domain/tenant"
)

// Services - доменные сервисы, которые обслуживает API.
type Services struct {
	Ledger  ledger.Servicer
	Tenants tenant.Renamer
	Remote  bool
}

type Handlers struct {
	Health *healthAPI.Handler
	Ledger *ledgerAPI.Handler
	Tenant *tenantAPI.Handler
}

// New создает *chi.Mux со всеми операциями, зарегистрированными через huma.Register
func New(services Services, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Smartmoney API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(services, log)
	h.Health.SetupRoutes(API)
	h.Ledger.SetupRoutes(API)
	h.Tenant.SetupRoutes(API)

	return mux
}

func handlers(services Services, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(services.Remote, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	ledgerHandler := ledgerAPI.NewHandler(services.Ledger, log.With("component", "ledger_api"), middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	tenantHandler := tenantAPI.NewHandler(services.Tenants, log.With("component", "tenant_api"), middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Ledger: ledgerHandler,
		Tenant: tenantHandler,
	}
}
