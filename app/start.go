package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/quiz-host/app/shared/eventbus"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
)

// Start serves the RPC surface until ctx is canceled, then shuts down.
func (app *App) Start(ctx context.Context) error {
	router, err := eventbus.NewAuditRouter(app.Logger, app.EventBus.Subscriber(), AuditTopics())
	if err != nil {
		return err
	}
	app.AuditRouter = router
	go func() {
		if err := router.Run(ctx); err != nil {
			app.Logger.ErrorContext(ctx, "Audit router stopped", attr.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.Logger.InfoContext(ctx, "Starting server", attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("listen and serve: %w", err)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	return app.WaitForShutdown(srv)
}
