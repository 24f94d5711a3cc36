package app

import (
	"net/http"

	"github.com/Black-And-White-Club/quiz-host/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Router builds the HTTP handler serving the RPC surface under /api.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httpx.CorrelationID)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := app.DB.PingContext(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if app.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	}

	limiter := httpx.NewClientLimiter(
		httpx.Budget{Rate: rate.Limit(app.Config.HTTP.RateLimit), Burst: app.Config.HTTP.RateBurst},
		httpx.Budget{Rate: rate.Limit(app.Config.HTTP.WriteRateLimit), Burst: app.Config.HTTP.WriteRateBurst},
	)
	r.Route("/api", func(r chi.Router) {
		r.Use(httpx.CORS(app.Config.HTTP.CORSOrigins))
		r.Use(limiter.Middleware)

		app.Modules.Lifeline.Handlers.Routes(r)
		app.Modules.Round.Handlers.Routes(r)
		app.Modules.Team.Handlers.Routes(r)
	})
	return r
}
