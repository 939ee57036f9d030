package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
)

const (
	// Redis hash field names for room keys.
	fieldName      = "name"
	fieldCreatedAt = "created_at"

	// roomCodesKey is the set of all stored room codes.
	roomCodesKey = "rooms"
	// memberIndexKey maps member ID -> room code (first join wins).
	memberIndexKey = "member_index"
)

// RoomStore implements domain.RoomStore on Redis.
type RoomStore struct {
	rdb   *goredis.Client
	clock clockwork.Clock
}

func NewRoomStore(rdb *goredis.Client, clock clockwork.Clock) *RoomStore {
	return &RoomStore{rdb: rdb, clock: clock}
}

func (s *RoomStore) CreateRoom(ctx context.Context, code domain.RoomCode, name string) (*domain.Room, error) {
	now := s.clock.Now()
	created, err := createRoomScript.Run(ctx, s.rdb,
		[]string{roomKey(code), roomCodesKey},
		name,
		strconv.FormatInt(now.UnixMilli(), 10),
		strconv.Itoa(int(code)),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("create room script failed: %w", err)
	}
	if created == 0 {
		return nil, domain.ErrDuplicateCode
	}

	return &domain.Room{Code: code, Name: name, Members: []domain.Member{}, CreatedAt: now}, nil
}

func (s *RoomStore) FindRoom(ctx context.Context, code domain.RoomCode) (*domain.Room, error) {
	pipe := s.rdb.Pipeline()
	hashCmd := pipe.HGetAll(ctx, roomKey(code))
	listCmd := pipe.LRange(ctx, memberListKey(code), 0, -1)
	sentCmd := pipe.HGetAll(ctx, sentimentKey(code))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read room %d: %w", code, err)
	}

	fields := hashCmd.Val()
	if len(fields) == 0 {
		return nil, domain.ErrRoomNotFound
	}

	return assembleRoom(code, fields, listCmd.Val(), sentCmd.Val()), nil
}

func (s *RoomStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	codes, err := s.rdb.SMembers(ctx, roomCodesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list room codes: %w", err)
	}

	rooms := make([]domain.Room, 0, len(codes))
	for _, raw := range codes {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}

		room, err := s.FindRoom(ctx, domain.RoomCode(n))
		if errors.Is(err, domain.ErrRoomNotFound) {
			// Code set and room hash can disagree mid-write; readers take
			// whatever state they observe.
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, nil
}

func (s *RoomStore) AddMember(ctx context.Context, code domain.RoomCode, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	added, err := addMemberScript.Run(ctx, s.rdb,
		[]string{roomKey(code), memberListKey(code), sentimentKey(code), memberPosKey(code), memberIndexKey},
		memberID,
		string(sentiment),
		strconv.Itoa(int(code)),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("add member script failed: %w", err)
	}
	if added == 0 {
		return nil, domain.ErrRoomNotFound
	}

	return s.FindRoom(ctx, code)
}

func (s *RoomStore) SetSentiment(ctx context.Context, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	raw, err := s.rdb.HGet(ctx, memberIndexKey, memberID).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member %q: %w", memberID, err)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("member index holds invalid code %q: %w", raw, err)
	}
	code := domain.RoomCode(n)

	// Members are never removed while a room exists, so the index cannot go
	// stale between the lookup and the update.
	updated, err := setSentimentScript.Run(ctx, s.rdb,
		[]string{memberPosKey(code), sentimentKey(code)},
		memberID,
		string(sentiment),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("set sentiment script failed: %w", err)
	}
	if updated == 0 {
		return nil, domain.ErrMemberNotFound
	}

	return s.FindRoom(ctx, code)
}

func (s *RoomStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.rdb.Ping(ctx).Err()
}

// assembleRoom builds the domain view from the three raw structures. The
// sentiment hash is keyed by 1-based list position, so every row carries its
// own sentiment even when member IDs repeat.
func assembleRoom(code domain.RoomCode, fields map[string]string, memberIDs []string, sentiments map[string]string) *domain.Room {
	room := &domain.Room{
		Code:    code,
		Name:    fields[fieldName],
		Members: make([]domain.Member, 0, len(memberIDs)),
	}

	if ms, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64); err == nil {
		room.CreatedAt = time.UnixMilli(ms)
	}

	for i, id := range memberIDs {
		room.Members = append(room.Members, domain.Member{
			ID:        id,
			Sentiment: domain.Sentiment(sentiments[strconv.Itoa(i+1)]),
		})
	}
	return room
}

// --- Key helpers ---

func roomKey(code domain.RoomCode) string {
	return "room:" + strconv.Itoa(int(code))
}

func memberListKey(code domain.RoomCode) string {
	return "room:" + strconv.Itoa(int(code)) + ":members"
}

func sentimentKey(code domain.RoomCode) string {
	return "room:" + strconv.Itoa(int(code)) + ":sentiments"
}

func memberPosKey(code domain.RoomCode) string {
	return "room:" + strconv.Itoa(int(code)) + ":member_pos"
}
