package httpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
	"github.com/AseemBaranwal/Sentimentor/internal/platform/config"
)

// --- Mock implementations ---

type mockSessionService struct {
	createRoomFn   func(ctx context.Context, name string) (*domain.Room, error)
	joinRoomFn     func(ctx context.Context, code domain.RoomCode, memberID string, sentiment domain.Sentiment) (*domain.Room, error)
	getRoomsFn     func(ctx context.Context) ([]domain.Room, error)
	getRoomFn      func(ctx context.Context, code domain.RoomCode) (*domain.Room, error)
	setSentimentFn func(ctx context.Context, memberID string, sentiment domain.Sentiment) (*domain.Room, error)
}

func (m *mockSessionService) CreateRoom(ctx context.Context, name string) (*domain.Room, error) {
	if m.createRoomFn != nil {
		return m.createRoomFn(ctx, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) JoinRoom(ctx context.Context, code domain.RoomCode, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	if m.joinRoomFn != nil {
		return m.joinRoomFn(ctx, code, memberID, sentiment)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) GetRooms(ctx context.Context) ([]domain.Room, error) {
	if m.getRoomsFn != nil {
		return m.getRoomsFn(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSessionService) GetRoom(ctx context.Context, code domain.RoomCode) (*domain.Room, error) {
	if m.getRoomFn != nil {
		return m.getRoomFn(ctx, code)
	}
	return nil, domain.ErrRoomNotFound
}

func (m *mockSessionService) SetSentiment(ctx context.Context, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	if m.setSentimentFn != nil {
		return m.setSentimentFn(ctx, memberID, sentiment)
	}
	return nil, errors.New("not implemented")
}

// --- Test helpers ---

func newTestServer(t *testing.T, app sessionService, opts ...func(*Server)) *Server {
	t.Helper()

	e := echo.New()

	srv := &Server{
		echo:   e,
		config: &config.Config{Port: "5500"},
		app:    app,
	}

	for _, opt := range opts {
		opt(srv)
	}

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}
