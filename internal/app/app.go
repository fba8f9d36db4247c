package app

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sritek/hospital-ops-sub000/internal/config"
	httpx "github.com/sritek/hospital-ops-sub000/internal/http"
	"github.com/sritek/hospital-ops-sub000/internal/http/handlers"
	"github.com/sritek/hospital-ops-sub000/internal/http/middleware"
)

// Run wires the service together and serves HTTP until the process
// receives SIGINT or SIGTERM. In-flight requests get a grace period,
// then the audit pipeline is drained and connections are closed.
func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	authMW := middleware.NewAuthMW(c.TokenSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpx.BuildRouter(authH, authMW),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
