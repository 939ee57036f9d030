package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// RoomStore implements domain.RoomStore on PostgreSQL.
type RoomStore struct {
	pool *pgxpool.Pool
}

func NewRoomStore(pool *pgxpool.Pool) *RoomStore {
	return &RoomStore{pool: pool}
}

func (s *RoomStore) CreateRoom(ctx context.Context, code domain.RoomCode, name string) (*domain.Room, error) {
	room := &domain.Room{Code: code, Name: name, Members: []domain.Member{}}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO rooms (code, name) VALUES ($1, $2) RETURNING created_at`,
		int64(code), name,
	).Scan(&room.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to insert room: %w", err)
	}

	return room, nil
}

func (s *RoomStore) FindRoom(ctx context.Context, code domain.RoomCode) (*domain.Room, error) {
	room := &domain.Room{Code: code, Members: []domain.Member{}}

	err := s.pool.QueryRow(ctx,
		`SELECT name, created_at FROM rooms WHERE code = $1`,
		int64(code),
	).Scan(&room.Name, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT member_id, sentiment FROM room_members WHERE room_code = $1 ORDER BY id`,
		int64(code),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get room members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Sentiment); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		room.Members = append(room.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read room members: %w", err)
	}

	return room, nil
}

func (s *RoomStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.code, r.name, r.created_at, m.member_id, m.sentiment
		FROM rooms r
		LEFT JOIN room_members m ON m.room_code = r.code
		ORDER BY r.code, m.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	byCode := make(map[domain.RoomCode]int)

	for rows.Next() {
		var (
			code      int64
			room      domain.Room
			memberID  *string
			sentiment *string
		)
		if err := rows.Scan(&code, &room.Name, &room.CreatedAt, &memberID, &sentiment); err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}

		idx, seen := byCode[domain.RoomCode(code)]
		if !seen {
			room.Code = domain.RoomCode(code)
			room.Members = []domain.Member{}
			rooms = append(rooms, room)
			idx = len(rooms) - 1
			byCode[room.Code] = idx
		}

		if memberID != nil {
			rooms[idx].Members = append(rooms[idx].Members, domain.Member{
				ID:        *memberID,
				Sentiment: domain.Sentiment(derefOr(sentiment, "")),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rooms: %w", err)
	}

	if rooms == nil {
		rooms = []domain.Room{}
	}
	return rooms, nil
}

func (s *RoomStore) AddMember(ctx context.Context, code domain.RoomCode, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	// Conditional insert: checking room existence and appending the member is
	// one statement, so a concurrent append can never be lost to a
	// read-modify-write race.
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO room_members (room_code, member_id, sentiment)
		SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM rooms WHERE code = $1)`,
		int64(code), memberID, string(sentiment),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrRoomNotFound
	}

	return s.FindRoom(ctx, code)
}

func (s *RoomStore) SetSentiment(ctx context.Context, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	// Update the earliest row for the member ID; a zero-match must surface,
	// not silently succeed.
	var roomCode int64
	err := s.pool.QueryRow(ctx, `
		UPDATE room_members SET sentiment = $1
		WHERE id = (SELECT id FROM room_members WHERE member_id = $2 ORDER BY id LIMIT 1)
		RETURNING room_code`,
		string(sentiment), memberID,
	).Scan(&roomCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update sentiment: %w", err)
	}

	return s.FindRoom(ctx, domain.RoomCode(roomCode))
}

func (s *RoomStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
