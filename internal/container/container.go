package container

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"handchart/internal"
	"handchart/internal/config"
	"handchart/internal/session"
	"handchart/ui"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Sessions *session.Manager
	Server   *ui.Server
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	gin.SetMode(cfg.Server.GinMode)
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))

	c := &Container{
		Config: cfg,
		Logger: logger,
		Sessions: session.NewManager(session.ManagerConfig{
			TTL:         cfg.Session.TTL,
			MaxSessions: cfg.Session.MaxSessions,
			Options:     cfg.Render.GeometryOptions(),
			Logger:      logger,
		}),
	}

	c.Server = ui.NewServer(cfg, c.Sessions, logger)
	if err := c.Server.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	return c, nil
}

// Run serves HTTP on the configured port and sweeps idle sessions until ctx
// is cancelled, then drains in-flight requests
func (c *Container) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.Sessions.Run(ctx, c.Config.Session.SweepEvery)

	srv := &http.Server{
		Addr:              ":" + c.Config.Server.Port,
		Handler:           c.Server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting handchart on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down (waiting up to %s for open requests)", shutdownTimeout)
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

// Shutdown releases renderer resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Server != nil {
		return c.Server.Close()
	}
	return nil
}
