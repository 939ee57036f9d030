// Package httpserver is the transport boundary: echo handlers that marshal
// the session operations onto the wire surface the browser clients expect.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
	"github.com/AseemBaranwal/Sentimentor/internal/platform/config"
)

// sessionService is the application layer contract - handlers route all
// operations through here.
type sessionService interface {
	CreateRoom(ctx context.Context, name string) (*domain.Room, error)
	JoinRoom(ctx context.Context, code domain.RoomCode, memberID string, sentiment domain.Sentiment) (*domain.Room, error)
	GetRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, code domain.RoomCode) (*domain.Room, error)
	SetSentiment(ctx context.Context, memberID string, sentiment domain.Sentiment) (*domain.Room, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app sessionService

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app sessionService, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
