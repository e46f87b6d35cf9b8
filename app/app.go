// Package app builds the HTTP service from configuration. It is shared by the
// standalone server and the serverless entry.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"techstore/catalog"
	"techstore/config"
	"techstore/controllers"
	"techstore/libs"
	"techstore/middleware"
	"techstore/repositories"
	"techstore/routes"
	"techstore/services"
	"techstore/session"
	"techstore/utils"
)

const migrationDir = "database/migration"

type App struct {
	Router   *gin.Engine
	Sessions *session.Store
	Checkout *services.CheckoutService

	db     *pgxpool.Pool
	cache  *redis.Client
	logger *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(utils.JSONTagName)
	}

	a := &App{logger: logger}

	var orders repositories.OrderRepository
	if cfg.DBEnabled {
		if err := config.RunMigrations(cfg, migrationDir); err != nil {
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		orders = repositories.NewPostgresOrderRepository(db)
		logger.Info("Order archive: postgres")
	} else {
		orders = repositories.NewMemoryOrderRepository()
		logger.Info("Order archive: in-memory")
	}

	a.cache = config.NewRedisClient(cfg, logger)

	var cdn services.ImageCDN
	if cfg.CloudinaryURL != "" {
		imageCDN, err := libs.NewImageCDN(cfg.CloudinaryURL)
		if err != nil {
			logger.Warn("Image CDN disabled", zap.Error(err))
		} else {
			cdn = imageCDN
		}
	}

	var notifier services.OrderNotifier
	mailer, err := libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if err != nil {
		logger.Info("Order confirmation emails disabled", zap.Error(err))
	} else {
		notifier = mailer
	}

	var opts []session.Option
	if cfg.DemoSeed {
		opts = append(opts, session.WithSeed(catalog.DemoCart))
	}
	a.Sessions = session.NewStore(cfg.Pricing, cfg.SessionTTL, logger, opts...)

	catalogSvc := services.NewCatalogService(catalog.Default(), a.cache, cdn, logger)
	a.Checkout = services.NewCheckoutService(orders, notifier, cfg.CheckoutDelay, logger)
	a.Sessions.OnEnd(func(sessionID string) { a.Checkout.Cancel(sessionID) })

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))

	routes.SetupRoutes(router, routes.Handlers{
		Session:  &controllers.SessionController{Store: a.Sessions, Secret: cfg.JWTSecret},
		Catalog:  &controllers.CatalogController{Catalog: catalogSvc},
		Cart:     &controllers.CartController{Cart: services.NewCartService(catalogSvc), Logger: logger},
		Checkout: &controllers.CheckoutController{Checkout: a.Checkout},
		Orders:   &controllers.OrderController{Orders: services.NewOrderService(orders)},

		Sessions:     a.Sessions,
		JWTSecret:    cfg.JWTSecret,
		AdminKeyHash: cfg.AdminKeyHash,
		Logger:       logger,
	})
	a.Router = router

	return a, nil
}

// Close releases the database pool and the cache client.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
}
