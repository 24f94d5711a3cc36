package app

import (
	"context"
	"fmt"
	"net/http"
)

// WaitForShutdown drains srv within the configured shutdown timeout.
func (app *App) WaitForShutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
	defer cancel()

	app.Logger.InfoContext(ctx, "Shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	app.Logger.InfoContext(ctx, "Server stopped")
	return nil
}
