package handler

import (
	"brokerwallet/internal/adapter/http/middleware"
	redisStore "brokerwallet/internal/adapter/storage/redis"
	"brokerwallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WithdrawalSvc  ports.WithdrawalService
	UnholdSvc      ports.UnholdService
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalSvc, deps.UnholdSvc, deps.ReportingSvc)
	adminHandler := NewAdminHandler(deps.WithdrawalSvc, deps.UnholdSvc)

	// API v1 routes
	v1 := r.Group("/api/v1", jwtAuth)

	// --- User routes ---
	withdrawals := v1.Group("/withdrawals")
	{
		withdrawals.POST("", rl("withdraw"), withdrawalHandler.RequestWithdrawal)
		withdrawals.POST("/:id/proof", rl("proof"), withdrawalHandler.SubmitPaymentProof)
		withdrawals.GET("/latest", rl("status"), withdrawalHandler.GetLatestStatus)
		withdrawals.GET("", rl("status"), withdrawalHandler.ListWithdrawals)
	}

	wallet := v1.Group("/wallet")
	{
		wallet.GET("/balance", rl("status"), withdrawalHandler.GetWalletBalance)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", rl("status"), withdrawalHandler.ListTransactions)
	}

	unhold := v1.Group("/unhold")
	{
		unhold.POST("", rl("unhold"), withdrawalHandler.SubmitUnholdProof)
		unhold.GET("/status", rl("status"), withdrawalHandler.GetUnholdStatus)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin", middleware.AdminOnly())
	{
		admin.GET("/withdrawals", rl("admin"), adminHandler.ListWithdrawals)
		admin.POST("/withdrawals/:id/process", rl("admin"), adminHandler.StartProcessing)
		admin.POST("/withdrawals/:id/approve", rl("admin"), adminHandler.Approve)
		admin.POST("/withdrawals/:id/reject", rl("admin"), adminHandler.Reject)
		admin.POST("/withdrawals/:id/hold", rl("admin"), adminHandler.Hold)
		admin.POST("/withdrawals/:id/fail", rl("admin"), adminHandler.Fail)
		admin.POST("/unhold/:id/approve", rl("admin"), adminHandler.ApproveUnhold)
		admin.POST("/unhold/:id/reject", rl("admin"), adminHandler.RejectUnhold)
	}

	return r
}
