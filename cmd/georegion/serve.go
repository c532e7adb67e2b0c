package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
	"github.com/kailas-cloud/georegion/internal/geodesic"
	logpkg "github.com/kailas-cloud/georegion/internal/logger"
	"github.com/kailas-cloud/georegion/internal/metrics"
	chiTransport "github.com/kailas-cloud/georegion/internal/transport/chi"
	"github.com/kailas-cloud/georegion/internal/transport/downloader"
	healthuc "github.com/kailas-cloud/georegion/internal/usecase/health"
)

func (a *app) serve(args []string) error {
	fs := a.flagSet("serve")
	port := fs.Int("port", a.cfg.HTTP.Port, "HTTP listen port")
	if _, err := parse(fs, args, 0, "no arguments"); err != nil {
		return err
	}

	a.logStartup("Starting georegion API server",
		zap.Int("http_port", *port),
		zap.String("default_mode", a.cfg.Region.DefaultMode),
		zap.Bool("auth_enabled", hasKeys(a.cfg.Auth.APIKeys)),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      a.router(),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	ctx, cancel := a.commandContext()
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("Server stopped gracefully")
	return nil
}

// router wires the API with its middleware chain.
func (a *app) router() http.Handler {
	healthSvc := healthuc.New(geodesic.NewWGS84(), downloader.New(downloader.Config{
		ScriptPath: a.cfg.Forecast.ScriptPath,
		Logger:     a.logger,
	}))
	server := chiTransport.NewServer(a.regions, healthSvc, a.logger).
		WithDefaultMode(mode.Mode(a.cfg.Region.DefaultMode)).
		WithMaxBatchSize(a.cfg.HTTP.MaxBatchSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(a.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(a.logger))
	r.Use(metrics.Middleware())
	r.Use(chiTransport.BearerAuthMiddleware(a.cfg.Auth.APIKeys))
	server.Routes(r)
	return r
}

func hasKeys(keys []string) bool {
	for _, k := range keys {
		if k != "" {
			return true
		}
	}
	return false
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits one log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi RequestID middleware already placed it in the context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
