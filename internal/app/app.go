package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/config"
	"github.com/vancomm/minesweeper-agent/internal/database"
	"github.com/vancomm/minesweeper-agent/internal/middleware"
)

type App struct {
	logger     *slog.Logger
	router     *mux.Router
	db         *pgxpool.Pool
	cookies    *config.Cookies
	jwt        *config.JWT
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     mux.NewRouter(),
		migrations: migrations,
	}
}

func (a *App) Start(ctx context.Context) error {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	defer db.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	a.jwt = jwt

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.loadRoutes()

	port := config.Port()
	server := &http.Server{
		Addr:        port,
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Logging(a.logger),
			middleware.Auth(cookies),
		),
	}

	errCh := make(chan error, 1)
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to listen and serve: %w", err)
		}
		close(errCh)
	}()

	a.logger.Info("server listening", slog.String("addr", port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	return server.Shutdown(sCtx)
}
