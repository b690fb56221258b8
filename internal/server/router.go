// Package server assembles the HTTP router from services and middleware.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	_ "fintrack/internal/docs" // Import swagger docs
)

// Options configures the router.
type Options struct {
	CORSAllowedOrigin string
	EnableSwagger     bool
}

// Services bundles the business services the routes depend on.
type Services struct {
	Transactions services.TransactionServicer
	Budgets      services.BudgetServicer
	Categories   services.CategoryServicer
	Analytics    services.AnalyticsServicer
	Audit        services.AuditServicer
}

// NewServices wires every service against db.
func NewServices(db *gorm.DB) Services {
	return Services{
		Transactions: services.NewTransactionService(db),
		Budgets:      services.NewBudgetService(db),
		Categories:   services.NewCategoryService(),
		Analytics:    services.NewAnalyticsService(db),
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter builds the Gin engine with all API routes mounted.
func NewRouter(svc Services, health handlers.Pinger, opts Options) *gin.Engine {
	validator.Register()

	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)
	healthHandler := handlers.NewHealthHandler(health)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(opts.CORSAllowedOrigin))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound())

	if opts.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", healthHandler.Health)

	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PATCH("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)

	v1.GET("/analytics", analyticsHandler.GetDashboard)

	return router
}
