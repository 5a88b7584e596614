package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/application/service"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/config"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/installment"
	domainRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/infrastructure/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/logger"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/handler"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/middleware"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/routes"
	"github.com/VictorHFerreira016/parkmoveis-sistema/pkg/printer"
)

// app is the wired API: repositories, services and the router on top.
type app struct {
	Router          *gin.Engine
	idempotencyRepo domainRepo.IdempotencyRepository
	rateLimiter     *middleware.ClientRateLimiter
	calendar        service.Calendar
}

// appOptions lets tests swap the clock and the printer
type appOptions struct {
	calendar *service.Calendar
	printer  printer.Printer
}

func newApp(cfg *config.Config, db *gorm.DB, opts ...func(*appOptions)) (*app, error) {
	log := logger.WithComponent("bootstrap")

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	calendar := service.NewCalendar(cfg.App.Location())
	if o.calendar != nil {
		calendar = *o.calendar
	}

	thermalPrinter := o.printer
	if thermalPrinter == nil {
		p, err := printer.New(printer.Config{
			Type:    cfg.Printer.Type,
			USBPath: cfg.Printer.USBPath,
			Address: cfg.Printer.Address,
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize printer, printing disabled")
			p = printer.NewNullPrinter()
		}
		thermalPrinter = p
	}

	policy := installment.Policy{
		FirstDueOffsetDays: cfg.Installment.FirstDueOffsetDays,
		IntervalDays:       cfg.Installment.IntervalDays,
		MinCount:           cfg.Installment.MinCount,
		MaxCount:           cfg.Installment.MaxCount,
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(service.SaleServiceDeps{
		Transactor:      transactor,
		SaleRepo:        saleRepo,
		InstallmentRepo: installmentRepo,
		PaymentRepo:     paymentRepo,
		ClientRepo:      clientRepo,
		ProductRepo:     productRepo,
	}, policy, cfg.Installment.BookletPageSize, calendar)
	installmentService := service.NewInstallmentService(transactor, installmentRepo, paymentRepo, saleRepo, policy, calendar)
	dashboardService := service.NewDashboardService(clientRepo, productRepo, analyticsRepo, installmentRepo, calendar)
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, installmentRepo, service.PrinterSettings{
		Type:            cfg.Printer.Type,
		StoreName:       cfg.Printer.StoreName,
		Width:           cfg.Printer.Width,
		BookletPageSize: cfg.Installment.BookletPageSize,
	}, calendar)

	handlers := &routes.Handlers{
		Client:      handler.NewClientHandler(clientService),
		Product:     handler.NewProductHandler(productService),
		Sale:        handler.NewSaleHandler(saleService),
		Installment: handler.NewInstallmentHandler(installmentService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	return &app{
		Router:          router,
		idempotencyRepo: idempotencyRepo,
		rateLimiter:     rateLimiter,
		calendar:        calendar,
	}, nil
}

// Close stops background work owned by the app
func (a *app) Close() {
	a.rateLimiter.Close()
}

// pruneLoop deletes expired idempotency keys every interval until ctx is done
func (a *app) pruneLoop(ctx context.Context, interval time.Duration) {
	log := logger.WithComponent("idempotency_pruner")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.idempotencyRepo.DeleteExpired(ctx, a.calendar.Now())
			if err != nil {
				log.Error().Err(err).Msg("prune failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("expired idempotency keys removed")
			}
		}
	}
}
