// Package memory implements domain.RoomStore with in-process maps.
//
// Used in single-instance mode and as the fast store for tests. All
// invariants are enforced under one mutex, so every operation is trivially
// atomic.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
)

type roomRecord struct {
	name      string
	createdAt time.Time
	members   []domain.Member
}

// Store holds all rooms in memory. memberRooms is the secondary index
// memberID -> code, pointing at the first room that member joined; it is
// maintained in the same critical section as the member append.
type Store struct {
	clock clockwork.Clock

	mu          sync.RWMutex
	rooms       map[domain.RoomCode]*roomRecord
	memberRooms map[string]domain.RoomCode
}

// NewStore creates an empty in-memory room store.
func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		clock:       clock,
		rooms:       make(map[domain.RoomCode]*roomRecord),
		memberRooms: make(map[string]domain.RoomCode),
	}
}

func (s *Store) CreateRoom(_ context.Context, code domain.RoomCode, name string) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[code]; exists {
		return nil, domain.ErrDuplicateCode
	}

	rec := &roomRecord{name: name, createdAt: s.clock.Now()}
	s.rooms[code] = rec
	return s.snapshot(code, rec), nil
}

func (s *Store) FindRoom(_ context.Context, code domain.RoomCode) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.rooms[code]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}
	return s.snapshot(code, rec), nil
}

func (s *Store) ListRooms(_ context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]domain.Room, 0, len(s.rooms))
	for code, rec := range s.rooms {
		rooms = append(rooms, *s.snapshot(code, rec))
	}
	return rooms, nil
}

func (s *Store) AddMember(_ context.Context, code domain.RoomCode, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.rooms[code]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	rec.members = append(rec.members, domain.Member{ID: memberID, Sentiment: sentiment})

	// Rejoining appends a second row; the index keeps pointing at the first
	// room the member joined.
	if _, indexed := s.memberRooms[memberID]; !indexed {
		s.memberRooms[memberID] = code
	}

	return s.snapshot(code, rec), nil
}

func (s *Store) SetSentiment(_ context.Context, memberID string, sentiment domain.Sentiment) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, indexed := s.memberRooms[memberID]
	if !indexed {
		return nil, domain.ErrMemberNotFound
	}

	rec := s.rooms[code]
	for i := range rec.members {
		if rec.members[i].ID == memberID {
			rec.members[i].Sentiment = sentiment
			return s.snapshot(code, rec), nil
		}
	}

	// Index entries are only written alongside appends and members are never
	// removed, so the scan above cannot miss.
	return nil, domain.ErrMemberNotFound
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}

// snapshot copies a record so callers never alias store-owned slices.
// Callers must hold at least the read lock.
func (s *Store) snapshot(code domain.RoomCode, rec *roomRecord) *domain.Room {
	members := make([]domain.Member, len(rec.members))
	copy(members, rec.members)
	return &domain.Room{
		Code:      code,
		Name:      rec.name,
		Members:   members,
		CreatedAt: rec.createdAt,
	}
}
