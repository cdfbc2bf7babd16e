package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"notigw/internal/broker"
	"notigw/internal/config"
	"notigw/internal/constants"
	"notigw/internal/gateway"
	"notigw/internal/logger"
	"notigw/pkg/health"
	"notigw/pkg/metrics"
	"notigw/pkg/middleware"
	"notigw/pkg/ratelimit"
	"notigw/pkg/tracing"
)

const serviceName = "gateway-service"

type App struct {
	config         *config.Config
	logger         logger.Logger
	producer       broker.Producer
	server         *http.Server
	router         *gin.Engine
	tracerProvider *tracing.TracerProvider
}

func NewApp(cfg *config.Config, log logger.Logger) *App {
	return &App{
		config: cfg,
		logger: log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	tp, err := tracing.Init(a.config.Tracing, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.tracerProvider = tp
	if a.config.Tracing.Enabled {
		a.logger.InfowCtx(ctx, "Tracing enabled", "endpoint", a.config.Tracing.OTLP.Endpoint)
	}

	if err := a.initRouter(); err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	if err := a.initServer(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	return nil
}

func (a *App) initRouter() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(a.logger))
	router.Use(middleware.LoggerMiddleware(a.logger))
	router.Use(middleware.RequestIDMiddleware())
	if a.config.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(serviceName))
	}

	if a.config.Gateway.RateLimit.Enabled {
		rateLimitConfig := ratelimit.Config{
			RPS:             a.config.Gateway.RateLimit.RPS,
			Burst:           a.config.Gateway.RateLimit.Burst,
			CleanupInterval: time.Duration(a.config.Gateway.RateLimit.CleanupInterval) * time.Second,
			MaxAge:          time.Duration(a.config.Gateway.RateLimit.MaxAge) * time.Second,
		}
		router.Use(ratelimit.Middleware(rateLimitConfig))
		a.logger.InfowCtx(context.Background(), "Rate limiting enabled", "rps", rateLimitConfig.RPS, "burst", rateLimitConfig.Burst)
	}

	// The producer is only constructed when the queue transport is
	// selected; the push sink carries the sink URL either way.
	var queueSink gateway.Sink
	if a.config.Gateway.QueueEnabled {
		producer, err := broker.NewProducer(a.config.Broker, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create producer: %w", err)
		}
		a.producer = producer
		queueSink = gateway.NewQueueSink(producer, a.config.Broker.Kafka.EgressTopic)
	}
	pushSink := gateway.NewPushSink(a.config.Gateway.SinkURL)

	gwRouter := gateway.NewRouter(a.config.Gateway.QueueEnabled, queueSink, pushSink, a.logger)
	svc := gateway.NewService(gwRouter, a.logger)
	handler := gateway.NewHandler(svc, a.logger)
	handler.RegisterRoutes(router)

	metrics.RegisterGatewayMetrics()

	healthRegistry := health.NewCheckerRegistry()
	if a.config.Gateway.QueueEnabled {
		healthRegistry.Register(health.NewKafkaChecker(a.config.Broker.Kafka.Brokers))
	}

	router.GET("/health", func(c *gin.Context) {
		h := healthRegistry.Check(c.Request.Context())
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, h)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	a.router = router
	return nil
}

func (a *App) initServer() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeoutSeconds) * time.Second,
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.InfowCtx(ctx, "Server listening",
			"port", a.config.Server.Port,
			"queue_enabled", a.config.Gateway.QueueEnabled,
		)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return a.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.InfowCtx(ctx, "Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("producer close error: %w", err))
		}
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown error: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	a.logger.InfowCtx(ctx, "Server exited successfully")
	return nil
}
