package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dnh33/metanet-gallery-oss/config"
	httpadapter "github.com/dnh33/metanet-gallery-oss/internal/adapters/http"
	"github.com/dnh33/metanet-gallery-oss/internal/adapters/http/api"
	"github.com/dnh33/metanet-gallery-oss/internal/adapters/http/api/handlers"
	"github.com/dnh33/metanet-gallery-oss/internal/adapters/supabase"
	"github.com/dnh33/metanet-gallery-oss/internal/usecase"
	pkglog "github.com/dnh33/metanet-gallery-oss/pkg/log"
)

type App struct {
	cfg    *config.Config
	logger pkglog.Logger
	echo   *echo.Echo
}

func New(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	logger := pkglog.New(cfg.AppEnv)

	// The client is built exactly once. An unconfigured deploy gets a
	// nil client and every endpoint degrades per its own contract.
	var sb supabase.Client
	if cfg.IsConfigured() {
		sb = supabase.NewHTTPClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseTimeout)
	} else {
		logger.Warn().Msg("supabase not configured, running in degraded mode")
	}

	service := usecase.NewProfileService(cfg, logger, sb)
	handler := handlers.New(cfg, logger, service)
	router := httpadapter.NewRouter(cfg, api.NewRouter(handler))

	e := echo.New()
	router.Setup(e)

	return &App{cfg: cfg, logger: logger, echo: e}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.echo.Shutdown(shutdownCtx)
	}()
	go func() {
		errCh <- a.echo.Start(fmt.Sprintf("%s:%s", a.cfg.HTTPHost, a.cfg.HTTPPort))
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
