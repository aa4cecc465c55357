package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/davesbikeparts/partshub/internal/auth"
	"github.com/davesbikeparts/partshub/internal/cache"
	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/http/handlers"
	"github.com/davesbikeparts/partshub/internal/http/middlewares"
	"github.com/davesbikeparts/partshub/internal/observability"
	"github.com/davesbikeparts/partshub/internal/payments"
	"github.com/davesbikeparts/partshub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the full route surface. The route-to-gate matrix lives
// here and nowhere else: which routes sit behind RequireAuth, and which of
// those additionally sit behind RequireAdmin.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("partshub-api"))
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20)) // 1 MiB
	r.Use(middlewares.RequireJSON())

	// metrics
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// auth chain
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	usersRepo := postgres.NewUsersRepo(pool)
	authmw := middlewares.NewAuthMiddleware(jwtManager)
	requireAuth := authmw.RequireAuth()
	requireAdmin := authmw.RequireAdmin(usersRepo)

	// rate limits: open endpoints by IP, gated ones by verified email
	openLimit := middlewares.NewRateLimiter(60, time.Minute)
	authedLimit := middlewares.NewRateLimiter(120, time.Minute)

	byIP := openLimit.RateLimiterMiddleware(middlewares.KeyByIP)
	byEmail := authedLimit.RateLimiterMiddleware(middlewares.KeyByEmailOrIP)

	// wire up repositories
	partsRepo := postgres.NewPartsRepo(pool)
	bookingsRepo := postgres.NewBookingsRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool)
	paymentsRepo := postgres.NewPaymentsRepo(pool, prom)
	jobsRepo := postgres.NewJobsRepo(pool, prom)

	catalog := cache.NewCatalog(rdb, cfg.CatalogCacheTTL)

	// wire up handlers
	partsHandler := handlers.NewPartsHandler(partsRepo, catalog)
	usersHandler := handlers.NewUsersHandler(usersRepo, jwtManager)
	bookingsHandler := handlers.NewBookingsHandler(bookingsRepo, paymentsRepo, jobsRepo)
	productsHandler := handlers.NewProductsHandler(productsRepo)
	intentHandler := handlers.NewPaymentIntentHandler(payments.NewStripeClient(cfg.StripeSecretKey))

	// parts: open catalog, authenticated insert
	r.GET("/bikepart", byIP, partsHandler.List)
	r.POST("/bikepart", requireAuth, byEmail, partsHandler.Create)

	// users: open list and upsert-login, admin-gated promotion
	r.GET("/user", byIP, usersHandler.List)
	r.PUT("/user/:email", byIP, usersHandler.Upsert)
	r.PUT("/user/admin/:email", requireAuth, requireAdmin, usersHandler.Promote)
	r.GET("/admin/:email", requireAuth, byEmail, usersHandler.IsAdmin)

	// bookings: self-service behind auth; payment completion is open (the
	// processor's redirect carries no bearer token)
	r.GET("/booking", requireAuth, byEmail, bookingsHandler.ListOwn)
	r.POST("/booking", requireAuth, byEmail, bookingsHandler.Create)
	r.GET("/booking/:id", requireAuth, byEmail, bookingsHandler.GetByID)
	r.PATCH("/booking/:id", byIP, bookingsHandler.MarkPaid)

	// products
	r.GET("/product", requireAuth, byEmail, productsHandler.List)
	r.POST("/product", requireAuth, requireAdmin, productsHandler.Create)
	r.DELETE("/product/:name", requireAuth, byEmail, productsHandler.Delete)

	// payment intent
	r.POST("/create-payment-intent", byIP, intentHandler.Create)

	return r
}
