package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/niknikgle/EyeOfSauron-Telegram/config"
)

// Module provides metrics and the health/metrics HTTP server for fx DI
var Module = fx.Module("metrics",
	fx.Provide(New),
	fx.Invoke(registerServer),
)

// registerServer starts the /metrics and /healthz endpoints on the service port
func registerServer(lc fx.Lifecycle, m *Metrics, cfg *config.ServiceConfig, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error().Err(err).Msg("Metrics server failed")
				}
			}()
			logger.Info().Str("port", cfg.Port).Msg("Metrics server started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Shutting down metrics server")
			return server.Shutdown(ctx)
		},
	})
}
