package main

import (
	"fmt"
	"os"

	"github.com/nurpe/delivery-billing/internal/auth"
	"github.com/nurpe/delivery-billing/internal/config"
	"github.com/nurpe/delivery-billing/internal/db"
	"github.com/nurpe/delivery-billing/internal/excel"
	httphandler "github.com/nurpe/delivery-billing/internal/http"
	"github.com/nurpe/delivery-billing/internal/http/middleware"
	"github.com/nurpe/delivery-billing/internal/logger"
	"github.com/nurpe/delivery-billing/internal/pdf"
	"github.com/nurpe/delivery-billing/internal/repository"
	"github.com/nurpe/delivery-billing/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	scheduleRepo := repository.NewScheduleRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)
	excelGenerator := excel.NewGenerator()
	pdfGenerator := pdf.NewGenerator()

	billingService := service.NewBillingService(scheduleRepo, invoiceRepo, excelGenerator, pdfGenerator, cfg)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(billingService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting billing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
