// Package observability provides structured logging, Prometheus metrics,
// health checks, and OpenTelemetry tracing for the platform API.
//
// # Structured Logging
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("user_id", id).Info("user logged in")
//
// # Prometheus Metrics
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.HTTPRequestsTotal.WithLabelValues("POST", "/api/auth/login", "200").Inc()
//	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(db, redisClient, objectStore)
//	mux.HandleFunc("/health", checker.Readiness)
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, cfg, logger)
//	defer providers.Shutdown(ctx)
//
// # Related Packages
//
//   - pkg/config: observability configuration
//   - pkg/httputil: request logging middleware
package observability
