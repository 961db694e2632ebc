package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang-stock-ledger/internal/ledger/config"
	"golang-stock-ledger/internal/ledger/delivery/bot"
	delivery "golang-stock-ledger/internal/ledger/delivery/http"
	_ "golang-stock-ledger/internal/ledger/docs"
	"golang-stock-ledger/internal/ledger/pricing"
	"golang-stock-ledger/internal/ledger/repository"
	"golang-stock-ledger/internal/ledger/service"
	"golang-stock-ledger/pkg/database"
	"golang-stock-ledger/pkg/logger"
	"golang-stock-ledger/pkg/redis"
	"golang-stock-ledger/pkg/telegram"
	"golang-stock-ledger/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the ledger service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Ledger Service", logger.Field("name", cfg.App.Name))

	clock, err := utils.NewClock(cfg.App.TimeZone)
	if err != nil {
		appLogger.Fatal("Invalid time zone", logger.ErrorField(err), logger.StringField("time_zone", cfg.App.TimeZone))
	}

	// Initialize database
	db, err := database.NewDB(database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		Path:            cfg.Database.Path,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db.DB); err != nil {
			appLogger.Fatal("Failed to migrate database", logger.ErrorField(err))
		}
	}

	// Price cache store
	var store pricing.PriceStore
	switch strings.ToLower(cfg.Pricing.CacheStore) {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		store = pricing.NewRedisStore(redisClient.Client, cfg.Redis.KeyPrefix, 2*pricing.FreshnessWindow)
	case "memory":
		store = pricing.NewMemoryStore()
	case "database":
		store = pricing.NewDatabaseStore(repository.NewPriceCacheRepository(db.DB))
	default:
		appLogger.Fatal("Unknown cache store", logger.StringField("cache_store", cfg.Pricing.CacheStore))
	}

	registry, err := pricing.NewRegistryFromConfig(cfg.Pricing, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build price sources", logger.ErrorField(err))
	}
	resolver := pricing.NewResolver(pricing.NewCache(store, clock, appLogger), registry, clock, cfg.Pricing.FetchTimeout, appLogger)

	// Telegram is optional; without it alerts are only recorded.
	var notifier telegram.Notifier
	var tgClient *telegram.Client
	if cfg.Telegram.Enabled {
		tgClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram client", logger.ErrorField(err))
		}
		notifier = tgClient
	}

	// Initialize services
	repos := service.NewRepositories(db.DB)
	ledgerSvc := service.NewLedgerService(db.DB, repos, clock, cfg.Ledger.DefaultHistoryLimit, appLogger)
	reportSvc := service.NewReportService(ledgerSvc, resolver, clock, cfg.Pricing.ReportWorkers, appLogger)
	performanceSvc := service.NewPerformanceService(repos.RealizedPnL, appLogger)
	portfolioSvc := service.NewPortfolioService(ledgerSvc, reportSvc, performanceSvc, resolver,
		service.PortfolioOptions{ValidateTickerOnBuy: cfg.Ledger.ValidateTickerOnBuy}, appLogger)
	alertSvc := service.NewAlertService(repository.NewPriceAlertRepository(db.DB), resolver, notifier, clock, appLogger)

	schedulerSvc, err := service.NewSchedulerService(cfg.Scheduler, reportSvc, alertSvc, clock, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize scheduler", logger.ErrorField(err))
	}
	utils.GoSafe(func() { schedulerSvc.Start(ctx) })

	var chatBot *bot.Bot
	if tgClient != nil {
		chatBot = bot.NewBot(tgClient, portfolioSvc, alertSvc, cfg.Telegram.PollTimeout, cfg.Scheduler.TaskTimeout, appLogger)
		chatBot.Start(ctx)
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	delivery.RegisterRoutes(e.Group("/api/v1"), portfolioSvc, ledgerSvc, alertSvc, appLogger)
	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	if chatBot != nil {
		chatBot.Wait()
	}

	appLogger.Info("Server exiting")
}

// @title Stock Ledger API
// @version 1.0
// @description Portfolio ledger with average-cost accounting, price cache and realized performance.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "ledger-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-ledger.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing ledger-service CLI: %s\n", err)
		os.Exit(1)
	}
}
