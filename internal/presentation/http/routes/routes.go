package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/config"
	domainRepo "github.com/VictorHFerreira016/parkmoveis-sistema/internal/domain/repository"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/handler"
	"github.com/VictorHFerreira016/parkmoveis-sistema/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Client      *handler.ClientHandler
	Product     *handler.ProductHandler
	Sale        *handler.SaleHandler
	Installment *handler.InstallmentHandler
	Dashboard   *handler.DashboardHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	registerRoutes(v1, h, deps)

	return router
}

func registerRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
	})

	clients := v1.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}

	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.DELETE("/:id", h.Sale.Delete)
		sales.GET("/:id/installments", h.Sale.Installments)
		sales.GET("/:id/booklet", h.Sale.Booklet)
	}

	installments := v1.Group("/installments")
	{
		installments.GET("", h.Installment.List)
		installments.GET("/stats", h.Installment.Stats)
		installments.GET("/export", h.Installment.Export)
		installments.POST("/preview", h.Installment.Preview)
		installments.GET("/:id", h.Installment.Get)
		installments.GET("/:id/payments", h.Installment.ListPayments)
		installments.POST("/:id/payments", idempotent, h.Installment.RegisterPayment)
	}

	v1.GET("/dashboard", h.Dashboard.GetStats)

	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/receipt/:sale_id", h.Printer.PrintReceipt)
		printerGroup.POST("/booklet/:sale_id", h.Printer.PrintBooklet)
	}
}
