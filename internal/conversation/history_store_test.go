package conversation

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryStore(t *testing.T, maxMessages int) (*HistoryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewHistoryStore(client, time.Hour, maxMessages), mr
}

func TestHistoryStoreSaveAndLoad(t *testing.T) {
	store, _ := newTestHistoryStore(t, 20)
	ctx := context.Background()

	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "pet me dard hai"},
		{Role: ChatRoleAssistant, Content: "kab se ho raha hai?"},
	}
	require.NoError(t, store.Save(ctx, "session-1", history))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, history, loaded)
}

func TestHistoryStoreUnknownSessionIsEmpty(t *testing.T) {
	store, _ := newTestHistoryStore(t, 20)

	loaded, err := store.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestHistoryStoreTruncatesToNewest(t *testing.T) {
	store, _ := newTestHistoryStore(t, 4)
	ctx := context.Background()

	var history []ChatMessage
	for i := 0; i < 10; i++ {
		history = append(history, ChatMessage{Role: ChatRoleUser, Content: fmt.Sprintf("msg %d", i)})
	}
	require.NoError(t, store.Save(ctx, "session-1", history))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	assert.Equal(t, "msg 6", loaded[0].Content)
	assert.Equal(t, "msg 9", loaded[3].Content)
}

func TestHistoryStoreAppend(t *testing.T) {
	store, _ := newTestHistoryStore(t, 20)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "session-1",
		ChatMessage{Role: ChatRoleUser, Content: "namaste"},
	))
	require.NoError(t, store.Append(ctx, "session-1",
		ChatMessage{Role: ChatRoleAssistant, Content: "namaste didi"},
	))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, ChatRoleAssistant, loaded[1].Role)
}

func TestHistoryStoreExpires(t *testing.T) {
	store, mr := newTestHistoryStore(t, 20)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", []ChatMessage{
		{Role: ChatRoleUser, Content: "hello"},
	}))

	mr.FastForward(2 * time.Hour)

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
