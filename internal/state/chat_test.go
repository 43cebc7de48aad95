package state

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
)

func TestStore_AddChatMessageAssignsIncreasingIDs(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, err := New(Options{Logger: zap.NewNop(), Clock: func() time.Time { return fixed }})
	require.NoError(t, err)

	first := s.AddChatMessage("hello", SenderUser)
	second := s.AddChatMessage("hi, looking for drums?", SenderBot, product("a", api.CategoryMusic, false))

	assert.NotEmpty(t, first.ID)
	a, err := strconv.ParseInt(first.ID, 10, 64)
	require.NoError(t, err)
	b, err := strconv.ParseInt(second.ID, 10, 64)
	require.NoError(t, err)
	assert.Less(t, a, b)
	assert.Equal(t, fixed, first.Timestamp)

	snap := s.Snapshot()
	require.Len(t, snap.Chat, 2)
	assert.Equal(t, first.ID, snap.Chat[0].ID)
	assert.Equal(t, SenderBot, snap.Chat[1].Sender)
	assert.Equal(t, []string{"a"}, ids(snap.Chat[1].Products))
}

func TestStore_ReturnedMessageIsACopy(t *testing.T) {
	s := newTestStore(t, nil, nil)
	msg := s.AddChatMessage("bot", SenderBot, product("a", api.CategoryMusic, false))
	msg.Products[0].Name = "mutated"
	assert.Equal(t, "Product a", s.Snapshot().Chat[0].Products[0].Name)
}

func TestStore_ClearChatMessages(t *testing.T) {
	s := newTestStore(t, nil, nil)
	s.AddChatMessage("one", SenderUser)
	s.AddChatMessage("two", SenderUser)

	assert.Empty(t, s.ClearChatMessages().Chat)
	assert.Empty(t, s.ClearChatMessages().Chat)
}
