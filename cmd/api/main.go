package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "loanbook-backend/internal/adapter/http"
	"loanbook-backend/internal/adapter/middleware"
	"loanbook-backend/internal/adapter/repository/mysql"
	"loanbook-backend/internal/config"
	"loanbook-backend/internal/infrastructure/cache"
	"loanbook-backend/internal/infrastructure/db"
	"loanbook-backend/internal/infrastructure/logger"
	capitaluc "loanbook-backend/internal/usecase/capital"
	loanuc "loanbook-backend/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New("loanbook-backend")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zl.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zl.Fatal("redis connect failed", zap.Error(err))
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	capitalRepo := mysql.NewCapitalRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	capitalUC := capitaluc.NewUsecase(capitalRepo, zl)
	loanUC := loanuc.NewUsecase(loanRepo, uow, capitalUC, zl)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUC)
	ch := httpadp.NewCapitalHandler(capitalUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zl)

	// routes
	e.GET("/health", h.Health)
	e.GET("/capital", ch.GetCapital)
	e.GET("/loans", lh.ListLoans)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.POST("/loans", lh.CreateLoan, idemp)
	e.PUT("/loans/:loan_id", lh.UpdateLoan, idemp)
	e.DELETE("/loans/:loan_id", lh.DeleteLoan, idemp)
	e.PATCH("/loans/:loan_id/payments", lh.ProcessPayment, idemp)
	e.POST("/loans/:loan_id/sweep-overdue", lh.SweepOverdue, idemp)

	addr := ":" + cfg.AppPort
	zl.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
