package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/AseemBaranwal/Sentimentor/internal/adapter/metrics"
	"github.com/AseemBaranwal/Sentimentor/internal/domain"
	"github.com/AseemBaranwal/Sentimentor/internal/platform/retry"
)

// Service is the application layer. It owns code generation and translates
// store outcomes into operation results; all room state flows through the
// injected RoomStore.
type Service struct {
	store       domain.RoomStore
	codes       *CodeGenerator
	maxAttempts int
	lookupGroup singleflight.Group
}

// NewService creates the application layer service. maxAttempts bounds the
// code regeneration loop during room creation.
func NewService(store domain.RoomStore, codes *CodeGenerator, maxAttempts int) *Service {
	return &Service{
		store:       store,
		codes:       codes,
		maxAttempts: maxAttempts,
	}
}

// CreateRoom generates a code and persists a new empty room. A code collision
// is recovered locally by redrawing; the loop is bounded so a nearly-exhausted
// code space fails instead of spinning.
func (s *Service) CreateRoom(ctx context.Context, name string) (*domain.Room, error) {
	policy := retry.Policy{
		MaxAttempts: s.maxAttempts,
		OnRetry: func(attempt int, err error, _ time.Duration) {
			metrics.RoomCodeCollisionsTotal.Inc()
			slog.Info("Room code collision, regenerating", "attempt", attempt)
		},
	}

	classify := func(err error) retry.Action {
		if errors.Is(err, domain.ErrDuplicateCode) {
			return retry.Retry
		}
		return retry.Stop
	}

	room, err := retry.Do(ctx, policy, classify, func() (*domain.Room, error) {
		return s.store.CreateRoom(ctx, s.codes.Next(), name)
	})
	if err != nil {
		var perm *retry.PermanentError
		if errors.As(err, &perm) {
			return nil, fmt.Errorf("failed to create room: %w", perm.Err)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	metrics.RoomsCreatedTotal.Inc()
	slog.InfoContext(ctx, "Room created", "code", room.Code, "name", name)
	return room, nil
}

// JoinRoom appends a member to a room. A missing sentiment defaults to the
// neutral label.
func (s *Service) JoinRoom(ctx context.Context, code domain.RoomCode, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	if sentiment.IsZero() {
		sentiment = domain.DefaultSentiment
	}

	room, err := s.store.AddMember(ctx, code, memberID, sentiment)
	if err != nil {
		return nil, err
	}

	metrics.MembersJoinedTotal.Inc()
	slog.InfoContext(ctx, "Member joined", "code", code, "member_id", memberID)
	return room, nil
}

// GetRooms returns all rooms with their members embedded.
func (s *Service) GetRooms(ctx context.Context) ([]domain.Room, error) {
	return s.store.ListRooms(ctx)
}

// GetRoom returns one room. Concurrent lookups for the same code are
// collapsed into a single store read; the moderator view polls this
// aggressively and snapshot consistency is not required.
func (s *Service) GetRoom(ctx context.Context, code domain.RoomCode) (*domain.Room, error) {
	v, err, _ := s.lookupGroup.Do(strconv.Itoa(int(code)), func() (any, error) {
		return s.store.FindRoom(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Room), nil
}

// SetSentiment overwrites the latest sentiment for a member, wherever it
// joined. An unknown member is an error, never a silent no-op.
func (s *Service) SetSentiment(ctx context.Context, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	room, err := s.store.SetSentiment(ctx, memberID, sentiment)
	if err != nil {
		return nil, err
	}

	metrics.SentimentUpdatesTotal.WithLabelValues(string(sentiment)).Inc()
	return room, nil
}
