package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AseemBaranwal/Sentimentor/internal/domain"
)

func TestRoomStoreCreateRoom(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	room, err := store.CreateRoom(ctx, 123456, "standup")

	require.NoError(t, err)
	assert.Equal(t, domain.RoomCode(123456), room.Code)
	assert.Equal(t, "standup", room.Name)
	assert.Empty(t, room.Members)
	assert.False(t, room.CreatedAt.IsZero())
}

func TestRoomStoreCreateRoom_DuplicateCode(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "first")
	require.NoError(t, err)

	_, err = store.CreateRoom(ctx, 123456, "second")
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	room, err := store.FindRoom(ctx, 123456)
	require.NoError(t, err)
	assert.Equal(t, "first", room.Name)
}

func TestRoomStoreCreateRoom_ConcurrentSameCode(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = store.CreateRoom(ctx, 555555, fmt.Sprintf("room-%d", i))
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	}
	assert.Equal(t, 1, created)
}

func TestRoomStoreFindRoom_NotFound(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.FindRoom(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomStoreFindRoom_PreservesJoinOrder(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	for _, id := range []string{"alice", "bob", "carol"} {
		_, err := store.AddMember(ctx, 123456, id, domain.SentimentNeutral)
		require.NoError(t, err)
	}

	room, err := store.FindRoom(ctx, 123456)
	require.NoError(t, err)
	require.Len(t, room.Members, 3)
	assert.Equal(t, "alice", room.Members[0].ID)
	assert.Equal(t, "bob", room.Members[1].ID)
	assert.Equal(t, "carol", room.Members[2].ID)
}

func TestRoomStoreListRooms(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	rooms, err := store.ListRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	_, err = store.CreateRoom(ctx, 111111, "alpha")
	require.NoError(t, err)
	_, err = store.CreateRoom(ctx, 222222, "beta")
	require.NoError(t, err)
	_, err = store.AddMember(ctx, 111111, "alice", domain.SentimentHappy)
	require.NoError(t, err)

	rooms, err = store.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	byCode := make(map[domain.RoomCode]domain.Room, len(rooms))
	for _, r := range rooms {
		byCode[r.Code] = r
	}
	assert.Equal(t, "alpha", byCode[111111].Name)
	require.Len(t, byCode[111111].Members, 1)
	assert.Equal(t, domain.SentimentHappy, byCode[111111].Members[0].Sentiment)
	assert.Empty(t, byCode[222222].Members)
}

func TestRoomStoreAddMember(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	room, err := store.AddMember(ctx, 123456, "alice", domain.SentimentHappy)
	require.NoError(t, err)
	require.Len(t, room.Members, 1)
	assert.Equal(t, "alice", room.Members[0].ID)
	assert.Equal(t, domain.SentimentHappy, room.Members[0].Sentiment)
}

func TestRoomStoreAddMember_RoomNotFound(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.AddMember(ctx, 999999, "alice", domain.SentimentNeutral)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomStoreAddMember_RejoinAppends(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	_, err = store.AddMember(ctx, 123456, "alice", domain.SentimentHappy)
	require.NoError(t, err)
	room, err := store.AddMember(ctx, 123456, "alice", domain.SentimentSad)
	require.NoError(t, err)

	// Each appended row keeps its own sentiment; the rejoin must not touch
	// the earlier row.
	require.Len(t, room.Members, 2)
	assert.Equal(t, "alice", room.Members[0].ID)
	assert.Equal(t, domain.SentimentHappy, room.Members[0].Sentiment)
	assert.Equal(t, "alice", room.Members[1].ID)
	assert.Equal(t, domain.SentimentSad, room.Members[1].Sentiment)
}

func TestRoomStoreAddMember_RejoinDefaultKeepsReportedSentiment(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	_, err = store.AddMember(ctx, 123456, "alice", domain.SentimentHappy)
	require.NoError(t, err)
	room, err := store.AddMember(ctx, 123456, "alice", domain.DefaultSentiment)
	require.NoError(t, err)

	require.Len(t, room.Members, 2)
	assert.Equal(t, domain.SentimentHappy, room.Members[0].Sentiment)
	assert.Equal(t, domain.DefaultSentiment, room.Members[1].Sentiment)
}

func TestRoomStoreAddMember_Concurrent(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	const workers = 16

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddMember(ctx, 123456, fmt.Sprintf("member-%d", i), domain.SentimentNeutral)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	room, err := store.FindRoom(ctx, 123456)
	require.NoError(t, err)
	assert.Len(t, room.Members, workers)
}

func TestRoomStoreAddMember_GeneratedIDs(t *testing.T) {
	// Browser clients identify members with generated UUIDs; make sure the
	// index round-trips them unchanged.
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	memberID := uuid.NewString()
	_, err = store.AddMember(ctx, 123456, memberID, domain.SentimentNeutral)
	require.NoError(t, err)

	room, err := store.SetSentiment(ctx, memberID, domain.SentimentHappy)
	require.NoError(t, err)
	require.Len(t, room.Members, 1)
	assert.Equal(t, memberID, room.Members[0].ID)
	assert.Equal(t, domain.SentimentHappy, room.Members[0].Sentiment)
}

func TestRoomStoreSetSentiment(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)
	_, err = store.AddMember(ctx, 123456, "alice", domain.SentimentNeutral)
	require.NoError(t, err)

	room, err := store.SetSentiment(ctx, "alice", domain.SentimentAngry)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomCode(123456), room.Code)
	require.Len(t, room.Members, 1)
	assert.Equal(t, domain.SentimentAngry, room.Members[0].Sentiment)

	// Overwrite keeps a single entry per member.
	room, err = store.SetSentiment(ctx, "alice", domain.SentimentHappy)
	require.NoError(t, err)
	require.Len(t, room.Members, 1)
	assert.Equal(t, domain.SentimentHappy, room.Members[0].Sentiment)
}

func TestRoomStoreSetSentiment_UpdatesFirstRowOnly(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	_, err = store.AddMember(ctx, 123456, "alice", domain.SentimentNeutral)
	require.NoError(t, err)
	_, err = store.AddMember(ctx, 123456, "alice", domain.SentimentSad)
	require.NoError(t, err)

	room, err := store.SetSentiment(ctx, "alice", domain.SentimentAngry)
	require.NoError(t, err)
	require.Len(t, room.Members, 2)
	assert.Equal(t, domain.SentimentAngry, room.Members[0].Sentiment)
	assert.Equal(t, domain.SentimentSad, room.Members[1].Sentiment)
}

func TestRoomStoreSetSentiment_MemberNotFound(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 123456, "standup")
	require.NoError(t, err)

	_, err = store.SetSentiment(ctx, "ghost", domain.SentimentSad)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestRoomStoreSetSentiment_FirstJoinWins(t *testing.T) {
	store := setupTestRoomStore(t)
	ctx := context.Background()

	_, err := store.CreateRoom(ctx, 111111, "alpha")
	require.NoError(t, err)
	_, err = store.CreateRoom(ctx, 222222, "beta")
	require.NoError(t, err)

	_, err = store.AddMember(ctx, 111111, "alice", domain.SentimentNeutral)
	require.NoError(t, err)
	_, err = store.AddMember(ctx, 222222, "alice", domain.SentimentNeutral)
	require.NoError(t, err)

	room, err := store.SetSentiment(ctx, "alice", domain.SentimentSurprise)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomCode(111111), room.Code)

	other, err := store.FindRoom(ctx, 222222)
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentNeutral, other.Members[0].Sentiment)
}

func TestRoomStorePing(t *testing.T) {
	store := setupTestRoomStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
