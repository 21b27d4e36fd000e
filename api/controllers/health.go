package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/nearbuy-market/storefront-gateway/api/responses"
	"github.com/nearbuy-market/storefront-gateway/pkg/config"
	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
)

const envHeader = "X-NearBuy-Env"

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness of the gateway's dependencies. A nil pinger
// is skipped, which covers the memory session backend running without redis.
func HealthReady(cfg *config.Config, logg *logger.Logger, backend, sessions Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		for name, dep := range map[string]Pinger{"backend": backend, "sessions": sessions} {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "unavailable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.ready."+name, err)
				}
				continue
			}
			checks[name] = "ok"
		}

		if !healthy {
			responses.WriteError(ctx, nil, w,
				pkgerrors.New(pkgerrors.CodeUpstream, "dependencies unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
