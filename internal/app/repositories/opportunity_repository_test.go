package repositories

import (
	"testing"
	"time"

	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildOpportunityListQueryNoFilters(t *testing.T) {
	sql, args, err := buildOpportunityListQuery(dto.OpportunityFilter{}, 20, 0)
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(*) OVER() AS total_count")
	assert.Contains(t, sql, "LEFT JOIN users u ON o.created_by = u.id")
	// Without an explicit deadline filter the active window applies
	assert.Contains(t, sql, "o.deadline > NOW()")
	assert.Contains(t, sql, "ORDER BY o.created_at DESC, o.id DESC")
	assert.Contains(t, sql, "LIMIT 20 OFFSET 0")
	assert.Empty(t, args)
}

func TestBuildOpportunityListQueryIncludeExpired(t *testing.T) {
	sql, args, err := buildOpportunityListQuery(dto.OpportunityFilter{IncludeExpired: true}, 20, 0)
	require.NoError(t, err)

	assert.NotContains(t, sql, "o.deadline > NOW()")
	assert.Empty(t, args)
}

func TestBuildOpportunityListQueryFilterArgsOrdered(t *testing.T) {
	createdBy := int64(7)
	before := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	filter := dto.OpportunityFilter{
		Category:       strPtr("internship"),
		Location:       strPtr("Berlin"),
		Field:          strPtr("engineering"),
		CreatedBy:      &createdBy,
		DeadlineBefore: &before,
	}

	sql, args, err := buildOpportunityListQuery(filter, 10, 30)
	require.NoError(t, err)

	// Placeholders are numbered in the order predicates were added
	assert.Contains(t, sql, "o.category = $1")
	assert.Contains(t, sql, "o.location ILIKE $2")
	assert.Contains(t, sql, "o.field = $3")
	assert.Contains(t, sql, "o.created_by = $4")
	assert.Contains(t, sql, "o.deadline < $5")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 30")

	require.Len(t, args, 5)
	assert.Equal(t, "internship", args[0])
	assert.Equal(t, "%Berlin%", args[1])
	assert.Equal(t, "engineering", args[2])
	assert.Equal(t, createdBy, args[3])
	assert.Equal(t, before, args[4])
}

func TestBuildOpportunityListQueryExplicitDeadlineReplacesWindow(t *testing.T) {
	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err := buildOpportunityListQuery(dto.OpportunityFilter{DeadlineAfter: &after}, 20, 0)
	require.NoError(t, err)

	assert.Contains(t, sql, "o.deadline > $1")
	assert.NotContains(t, sql, "NOW()")
	require.Len(t, args, 1)
	assert.Equal(t, after, args[0])
}
