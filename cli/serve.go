// Package cli implements the timeline subcommands.
package cli

import (
	"context"
	"net"
	"net/http"
	"time"

	"timeline/app/config"
	"timeline/app/i18n"
	applog "timeline/app/log"
	"timeline/app/models"
	"timeline/app/repositories"
	"timeline/app/routes"
	"timeline/app/seed"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Serve listens on cfg.Addr and runs the feed until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", cfg.Addr)
	}
	return Run(ctx, cfg, ln)
}

// Run serves the feed on ln. When ctx is done the server stops accepting
// connections and waits for in-flight requests before returning.
func Run(ctx context.Context, cfg config.Config, ln net.Listener) error {
	locale, err := i18n.New(cfg.Locale)
	if err != nil {
		ln.Close()
		return err
	}

	posts, err := loadPosts(cfg.FeedFile)
	if err != nil {
		ln.Close()
		return err
	}

	// Threads live in memory only and do not outlive the process
	db, err := repositories.Open("")
	if err != nil {
		ln.Close()
		return err
	}
	defer db.Close()

	router, err := routes.SetupRoutes(db, posts, routes.Options{
		Locale:     locale,
		SessionTTL: cfg.SessionTTL,
		DeleteMode: cfg.DeleteMode,
	})
	if err != nil {
		ln.Close()
		return errors.Wrap(err, "setup routes")
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	applog.Log.WithFields(logrus.Fields{
		"addr":        ln.Addr().String(),
		"posts":       len(posts),
		"locale":      locale.Tag(),
		"delete_mode": cfg.DeleteMode,
	}).Info("Starting timeline server")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	applog.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	applog.Log.Info("Server stopped")
	return nil
}

// loadPosts reads the feed file, or the built-in feed when path is empty.
func loadPosts(path string) ([]*models.Post, error) {
	if path == "" {
		return seed.Default(time.Local)
	}
	return seed.LoadFile(path, time.Local)
}
