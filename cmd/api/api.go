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
	"github.com/jamalsoueidan/book-appointment-app/docs"
	"github.com/jamalsoueidan/book-appointment-app/internal/queue"
	"github.com/jamalsoueidan/book-appointment-app/internal/ratelimiter"
	"github.com/jamalsoueidan/book-appointment-app/internal/service"
	"github.com/jamalsoueidan/book-appointment-app/internal/store/mongo"
	"github.com/jamalsoueidan/book-appointment-app/internal/store/redis"
	"github.com/jamalsoueidan/book-appointment-app/internal/worker"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config              config
	logger              *zap.SugaredLogger
	rateLimiter         ratelimiter.Limiter
	storage             *mongo.Storage
	carts               *redis.CartRepository
	broker              queue.Broker
	staffService        *service.StaffService
	scheduleService     *service.ScheduleService
	availabilityService *service.AvailabilityService
	bookingService      *service.BookingService
	notificationService *service.NotificationService
	notificationWorker  *worker.NotificationWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	redis       redis.Config
	sms         smsConfig
	cartTTL     time.Duration
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

type smsConfig struct {
	BaseURL     string
	APIKey      string
	SenderName  string
	DisplayZone string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/webhooks/orders", func(r chi.Router) {
			r.Post("/create", app.orderCreateHandler)
			r.Post("/update", app.orderUpdateHandler)
			r.Post("/cancel", app.orderCancelHandler)
		})

		r.Get("/availability", app.getAvailabilityHandler)
		r.Post("/carts", app.createCartHandler)

		r.Route("/staff", func(r chi.Router) {
			r.Post("/", app.createStaffHandler)
			r.Get("/", app.listStaffHandler)
			r.Get("/{staff_id}", app.getStaffHandler)
			r.Put("/{staff_id}", app.updateStaffHandler)
			r.Delete("/{staff_id}", app.deleteStaffHandler)
			r.Post("/{staff_id}/schedules", app.createScheduleHandler)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Put("/{schedule_id}", app.updateScheduleHandler)
			r.Delete("/{schedule_id}", app.deleteScheduleHandler)
			r.Put("/group/{group_id}", app.updateScheduleGroupHandler)
			r.Delete("/group/{group_id}", app.deleteScheduleGroupHandler)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", app.getNotificationsHandler)
			r.Post("/", app.sendNotificationHandler)
			r.Post("/{notification_id}/resend", app.resendNotificationHandler)
			r.Delete("/{notification_id}", app.cancelNotificationHandler)
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Book Appointment App"
	docs.SwaggerInfo.Description = "Availability and booking reconciliation API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.notificationWorker != nil {
		if err := app.notificationWorker.Start(); err != nil {
			return fmt.Errorf("failed to start notification worker: %w", err)
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

		if app.notificationWorker != nil {
			app.notificationWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.carts != nil {
			if err := app.carts.Close(); err != nil {
				app.logger.Errorw("error closing Redis", "error", err)
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

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
