package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/littlemangalore/venue-booking/internal/app"
	"github.com/littlemangalore/venue-booking/internal/config"
	"github.com/littlemangalore/venue-booking/internal/controller"
	"github.com/littlemangalore/venue-booking/internal/events"
	"github.com/littlemangalore/venue-booking/internal/notify"
	"github.com/littlemangalore/venue-booking/internal/payment"
	"github.com/littlemangalore/venue-booking/internal/repository"
	"github.com/littlemangalore/venue-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting venue booking server",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	blockedRepo := repository.NewBlockedDateRepository(pool)

	hub := events.NewHub()
	go hub.Run()

	whatsapp := notify.NewWhatsApp(cfg.OwnerPhone)
	upi := payment.NewUPI(cfg.UPIID, cfg.UPIName)

	availabilitySvc := service.NewAvailabilityService(bookingRepo, blockedRepo)
	bookingSvc := service.NewBookingService(bookingRepo, availabilitySvc, whatsapp, upi, hub, logger)
	statusSvc := service.NewStatusService(bookingRepo, hub, logger)
	calendarSvc := service.NewCalendarService(blockedRepo, hub, logger)

	srv := controller.New(cfg, logger, bookingSvc, statusSvc, calendarSvc, availabilitySvc, hub)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutdown signal received, shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	hub.Stop()
	logger.Info("Server stopped")
}
