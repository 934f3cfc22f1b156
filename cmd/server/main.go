package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farwill/travel-booking/internal/booking"
	"github.com/farwill/travel-booking/internal/config"
	"github.com/farwill/travel-booking/internal/database"
	"github.com/farwill/travel-booking/internal/handler"
	"github.com/farwill/travel-booking/internal/mailer"
	"github.com/farwill/travel-booking/internal/metrics"
	"github.com/farwill/travel-booking/internal/payment"
	"github.com/farwill/travel-booking/internal/queue"
	"github.com/farwill/travel-booking/internal/repository"
	"github.com/farwill/travel-booking/internal/router"
	queuepublisher "github.com/farwill/travel-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient() // nil when redis is absent; limiter and cache degrade

	// Repositories share the single pooled connection.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	packages := repository.NewPackageRepo(db)
	fees := repository.NewFeesRepo(db)
	reservations := repository.NewReservationRepo(db)
	tickets := repository.NewTicketRepo(db)

	gateway := payment.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecret, cfg.PaystackTimeout, nil)
	events := queuepublisher.NewPublisher(cfg.RabbitURL)
	flow := booking.NewReconciler(gateway, users, reservations, events)

	// The consumer drains the notification queue and hands rendered mail to
	// the SMTP relay.  With no broker configured it exits immediately.
	sender := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	go queue.StartEmailConsumer(cfg.RabbitURL, mailer.RenderEvent(cfg.ClientURL), sender)

	metrics.Register()
	if cfg.MetricsPort != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("metrics on :%s", cfg.MetricsPort)
			if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, events), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(packages, fees, tickets), config.LoadCacheConfig(), rdb)
	router.RegisterUser(e, handler.NewReservationHandler(flow, reservations), cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)
	router.RegisterAdmin(e, handler.NewAdminHandler(users, packages, fees, reservations, tickets, events), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
