package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bedadmin/admin-service/internal/app/admin/config"
	"bedadmin/admin-service/internal/app/admin/handler"
	"bedadmin/admin-service/internal/app/admin/infrastructure"
	"bedadmin/admin-service/internal/app/admin/infrastructure/cache"
	"bedadmin/admin-service/internal/app/admin/infrastructure/messaging"
	"bedadmin/admin-service/internal/app/admin/infrastructure/upstream"
	"bedadmin/admin-service/internal/app/admin/processor"
	"bedadmin/admin-service/internal/app/admin/repository"
	"bedadmin/admin-service/internal/app/admin/resource"
	"bedadmin/admin-service/internal/app/admin/service"
	"bedadmin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("admin-service", cfg.LogLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "admin-service", cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	upstreamClient := upstream.NewClient(cfg.Upstream)
	logger.Info().
		Str("base_url", cfg.Upstream.BaseURL).
		Dur("timeout", cfg.Upstream.Timeout).
		Msg("Initialized backend API client")

	// Redis опционален: без него справочники форм читаются напрямую
	var optionCache infrastructure.OptionCache
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Address()).Msg("Redis unavailable, option cache disabled")
		} else {
			optionCache = redisCache
			defer redisCache.Close()
			logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")
		}
	}

	// Kafka опциональна: без нее события аудита не отправляются
	var publisher infrastructure.MessagePublisher
	if cfg.Kafka.Enabled() {
		kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher = kafkaProducer
		defer kafkaProducer.Close()
		logger.Info().
			Str("topic", cfg.Kafka.Topic).
			Strs("brokers", cfg.Kafka.Brokers).
			Msg("Initialized Kafka producer")
	}

	registry := resource.NewRegistry()
	viewRepo := repository.NewInMemoryViewRepository()
	optionProvider := service.NewOptionProvider(upstreamClient, optionCache, cfg.Redis.TTL)
	auditPublisher := service.NewAuditPublisher(publisher, optionProvider)
	viewService := service.NewViewService(registry, viewRepo, upstreamClient, optionProvider, auditPublisher, cfg.Views.InboxSize)

	sweeper := processor.NewViewSweeper(viewService, cfg.Views.IdleTTL)
	if err := sweeper.Start(cfg.Views.SweepSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start view sweeper")
	}

	viewHandler := handler.NewViewHandler(viewService)
	router := handler.SetupRoutes(viewHandler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Admin Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Admin Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sweeper.Stop()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	closed := viewService.UnmountAll()
	logger.Info().Int("views", closed).Msg("Admin Service stopped gracefully")
}
