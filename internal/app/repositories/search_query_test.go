package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostSearchQueryRanking(t *testing.T) {
	assert.Contains(t, postSearchQuery, "setweight(to_tsvector('english', p.title), 'A')")
	assert.Contains(t, postSearchQuery, "setweight(to_tsvector('english', p.content), 'B')")
	assert.Contains(t, postSearchQuery, "plainto_tsquery('english', $1)")
	assert.Contains(t, postSearchQuery, "ORDER BY rank DESC, p.created_at DESC")
}

func TestCommunitySearchQueryRanking(t *testing.T) {
	assert.Contains(t, communitySearchQuery, "setweight(to_tsvector('english', c.name), 'A')")
	assert.Contains(t, communitySearchQuery, "setweight(to_tsvector('english', c.description), 'B')")
	assert.Contains(t, communitySearchQuery, "c.is_public = TRUE")
	assert.Contains(t, communitySearchQuery, "ORDER BY rank DESC, c.member_count DESC, c.created_at DESC")
}
