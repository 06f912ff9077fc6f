package repositories

import (
	"testing"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Conversation hydration must stay batched: one query per relation for the
// whole page, never one per conversation.
func TestConversationHydrationQueriesAreBatched(t *testing.T) {
	assert.Contains(t, conversationParticipantsQuery, "ANY($1)")
	assert.NotContains(t, conversationParticipantsQuery, "$2")

	assert.Contains(t, conversationLastMessagesQuery, "DISTINCT ON (conversation_id)")
	assert.Contains(t, conversationLastMessagesQuery, "ANY($1)")
	assert.NotContains(t, conversationLastMessagesQuery, "$2")
	assert.Contains(t, conversationLastMessagesQuery, "ORDER BY conversation_id, created_at DESC, id DESC")
}

func TestConversationIDsIndex(t *testing.T) {
	conversations := []*models.Conversation{{ID: 4}, {ID: 9}, {ID: 2}}

	ids, byID := conversationIDs(conversations)
	require.Equal(t, []int64{4, 9, 2}, ids)
	assert.Same(t, conversations[1], byID[9])
	assert.Len(t, byID, 3)
}
