package app

import (
	"context"
	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/httpclient"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/api"
	"fxconvert/internal/config"
	"fxconvert/internal/conversion"
	"fxconvert/internal/conversion/handler"
	"fxconvert/internal/domain"
	"fxconvert/internal/history"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/platform/metrics"
	"fxconvert/internal/rate"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and the optional cache warm-up scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// History backend
	historyRepo, closeHistory, err := newHistoryRepository(ctx, appCfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients, optionally behind the rate cache
	var primaryClient adapters.RateClient = httpclient.NewExchangeRateClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.PrimaryProvider.BaseURL, "/"),
	)
	var cachedPrimary *cache.CachedRateClient
	var rateCache *cache.RistrettoRateCache
	if appCfg.RateCache.TTLSeconds > 0 {
		rateCache, err = cache.NewRateCache(appCfg.RateCache.MaxItems, time.Duration(appCfg.RateCache.TTLSeconds)*time.Second)
		if err != nil {
			logrus.WithError(err).Error("Failed to create rate cache")
			return err
		}
		defer rateCache.Close()
		cachedPrimary = cache.NewCachedRateClient(primaryClient, rateCache)
		primaryClient = cachedPrimary
		logrus.Info("✅ Rate cache enabled")
	}

	// Resolution chain: primary, optional secondary, offline table
	requestTimeout := appCfg.Resolver.RequestTimeout()
	strategies := []rate.Strategy{
		rate.NewRemoteStrategy(domain.SourcePrimary, primaryClient, requestTimeout, appMetrics),
	}
	if appCfg.SecondaryProvider.Enabled {
		var secondaryClient adapters.RateClient = httpclient.NewCurrencyAPIClient(
			baseHTTPClient,
			appCfg.SecondaryProvider.BaseURL,
			appCfg.SecondaryProvider.APIKey,
		)
		if rateCache != nil {
			secondaryClient = cache.NewCachedRateClient(secondaryClient, rateCache)
		}
		strategies = append(strategies, rate.NewRemoteStrategy(domain.SourceSecondary, secondaryClient, requestTimeout, appMetrics))
		logrus.Info("✅ Secondary rate provider enabled")
	}
	strategies = append(strategies, rate.NewOfflineStrategy(rate.DefaultFallbackTable(), rate.NewJitter(nil)))
	resolver := rate.NewResolver(appMetrics, strategies...)

	// Services
	supportedCodes := make([]domain.CurrencyCode, 0, len(appCfg.Currencies.Supported))
	for _, c := range appCfg.Currencies.Supported {
		supportedCodes = append(supportedCodes, domain.CurrencyCode(c))
	}
	rateValidator := rate.NewValidator(supportedCodes)
	conversionService := conversion.NewService(resolver, historyRepo, appCfg.Conversion.MaxAmount, appMetrics)

	// Cache warm-up keeps primary answers fresh between requests
	if cachedPrimary != nil && appCfg.Scheduler.WarmIntervalSec > 0 {
		scheduler := rate.NewScheduler(cachedPrimary, supportedCodes, time.Duration(appCfg.Scheduler.WarmIntervalSec)*time.Second)
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	rateLimiter, err := api.NewRateLimiter(appCfg.RateLimit.Rate)
	if err != nil {
		logrus.WithError(err).Error("Invalid rate limit")
		return err
	}
	conversionHandler := handler.NewConversionHandler(rateValidator, conversionService)
	router := api.NewRouter(conversionHandler, registry, rateLimiter)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// newHistoryRepository returns the configured history backend and its cleanup func
func newHistoryRepository(ctx context.Context, appCfg *config.AppConfig) (adapters.HistoryRepository, func(), error) {
	if appCfg.History.Backend != "postgres" {
		logrus.Info("✅ In-memory history enabled")
		return history.NewMemoryStore(appCfg.History.Capacity), func() {}, nil
	}

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.Migrate(startupCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Error migrating db")
		return nil, nil, err
	}

	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return nil, nil, err
	}
	logrus.Info("✅ Postgres connection successful")
	return postgres.NewHistoryRepository(pool, appCfg.History.Capacity), pool.Close, nil
}
