package router

import (
	"fmt"
	"log/slog"
	"time"

	"expense-api/internal/config"
	"expense-api/internal/handler"
	"expense-api/internal/middleware"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires stores, handlers and middleware onto a gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *slog.Logger) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	tokens, err := util.NewTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm,
		time.Duration(cfg.JWT.ExpireMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	users := store.NewUsers(db, util.NewPasswordHasher(cfg.Security.BcryptCost))
	expenses := store.NewExpenses(db)
	budgets := store.NewBudgets(db)
	analytics := store.NewAnalytics(expenses)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	if cors := middleware.CORS(cfg.CORS.Origins()); cors != nil {
		r.Use(cors)
	}

	env := cfg.App.Environment
	r.GET("/", handler.Root(env))
	r.GET("/health", handler.Health(env))

	auth := middleware.NewAuthenticator(tokens, users, log)
	requireUser := auth.Middleware()

	// ---------- auth ----------
	authHandler := handler.NewAuthHandler(users, tokens, log)
	authGroup := r.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", requireUser, authHandler.Me)

	// ---------- expenses ----------
	expenseHandler := handler.NewExpenseHandler(expenses, log)
	exportHandler := handler.NewExportHandler(expenses, log)
	expenseGroup := r.Group("/expenses", requireUser)
	expenseGroup.POST("/", expenseHandler.CreateExpense)
	expenseGroup.GET("/", expenseHandler.ListExpenses)
	expenseGroup.GET("/export", exportHandler.Export)
	expenseGroup.DELETE("/:id", expenseHandler.DeleteExpense)

	// ---------- budgets ----------
	budgetHandler := handler.NewBudgetHandler(budgets, log)
	budgetGroup := r.Group("/budgets", requireUser)
	budgetGroup.POST("/", budgetHandler.CreateBudget)
	budgetGroup.GET("/", budgetHandler.ListBudgets)

	// ---------- analytics ----------
	analyticsHandler := handler.NewAnalyticsHandler(analytics, log)
	r.GET("/analytics/spending-summary", requireUser, analyticsHandler.SpendingSummary)

	return r, nil
}
