package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/javiersuazo/thiam-dashboard-sub002/docs"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/queue"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/ratelimiter"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/service"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/store/mongo"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/worker"
)

type application struct {
	config         config
	logger         *zap.SugaredLogger
	rateLimiter    ratelimiter.Limiter
	storage        *mongo.Storage
	broker         queue.Broker
	menuService    *service.MenuService
	offerService   *service.OfferService
	catalogService *service.CatalogService
	auditService   *service.AuditService
	auditWorker    *worker.AuditWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	corsOrigin  string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/accounts/{account_id}", func(r chi.Router) {
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", app.listCatalogHandler)
				r.Put("/", app.replaceCatalogHandler)
			})

			r.Route("/menus", func(r chi.Router) {
				r.Get("/", app.listMenusHandler)
				r.Post("/", app.createMenuHandler)

				r.Route("/{menu_id}", func(r chi.Router) {
					r.Get("/", app.getMenuHandler)
					r.Put("/", app.updateMenuHandler)
					r.Delete("/", app.deleteMenuHandler)
					r.Post("/duplicate", app.duplicateMenuHandler)
					r.Get("/audit", app.getMenuAuditHandler)
					r.Patch("/pricing", app.updateMenuPricingHandler)

					r.Post("/items", app.addMenuItemHandler)
					r.Post("/items/{item_ref_id}/move", app.moveMenuItemHandler)

					r.Post("/courses", app.addCourseHandler)
					r.Post("/courses/reorder", app.reorderCoursesHandler)
					r.Route("/courses/{course_id}", func(r chi.Router) {
						r.Delete("/", app.removeCourseHandler)
						r.Patch("/", app.renameCourseHandler)
						r.Post("/reorder", app.reorderMenuItemsHandler)
						r.Delete("/items/{item_ref_id}", app.removeMenuItemHandler)
						r.Post("/items/{item_ref_id}/duplicate", app.duplicateMenuItemHandler)
						r.Patch("/items/{item_ref_id}/price", app.updateMenuItemPriceHandler)
						r.Patch("/items/{item_ref_id}/quantity", app.updateMenuItemQuantityHandler)
						r.Patch("/items/{item_ref_id}/availability", app.updateMenuItemAvailabilityHandler)
					})
				})
			})

			r.Route("/offers", func(r chi.Router) {
				r.Get("/", app.listOffersHandler)
				r.Post("/", app.createOfferHandler)

				r.Route("/{offer_id}", func(r chi.Router) {
					r.Get("/", app.getOfferHandler)
					r.Put("/", app.updateOfferHandler)
					r.Delete("/", app.deleteOfferHandler)
					r.Post("/duplicate", app.duplicateOfferHandler)
					r.Get("/audit", app.getOfferAuditHandler)
					r.Patch("/pricing", app.updateOfferPricingHandler)
					r.Patch("/discount", app.updateOfferDiscountHandler)

					r.Post("/items", app.addOfferItemHandler)
					r.Post("/items/{item_ref_id}/move", app.moveOfferItemHandler)

					r.Post("/blocks", app.addBlockHandler)
					r.Post("/blocks/reorder", app.reorderBlocksHandler)
					r.Route("/blocks/{block_id}", func(r chi.Router) {
						r.Delete("/", app.removeBlockHandler)
						r.Patch("/", app.renameBlockHandler)
						r.Post("/reorder", app.reorderOfferItemsHandler)
						r.Delete("/items/{item_ref_id}", app.removeOfferItemHandler)
						r.Post("/items/{item_ref_id}/duplicate", app.duplicateOfferItemHandler)
						r.Patch("/items/{item_ref_id}/price", app.updateOfferItemPriceHandler)
						r.Patch("/items/{item_ref_id}/quantity", app.updateOfferItemQuantityHandler)
						r.Patch("/items/{item_ref_id}/availability", app.updateOfferItemAvailabilityHandler)
					})
				})
			})
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Catering Builder API"
	docs.SwaggerInfo.Description = "Menu and offer builder backend for the catering dashboard"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.auditWorker != nil {
		if err := app.auditWorker.Start(); err != nil {
			return fmt.Errorf("failed to start audit worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.auditWorker != nil {
			app.auditWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
