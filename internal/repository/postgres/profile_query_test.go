package postgres

import (
	"strings"
	"testing"

	"devhire-backend/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%react%", containsPattern("react"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c\\d%`, containsPattern(`c\d`))
}

func TestBuildSearchFilter(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		where, args := buildSearchFilter(domain.SearchCriteria{Page: 1, Limit: 12})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("all filters in placeholder order", func(t *testing.T) {
		min := 50.0
		where, args := buildSearchFilter(domain.SearchCriteria{
			Skills:        []string{"React", "node"},
			Location:      "Berlin",
			Availability:  domain.AvailabilityAvailable,
			MinCompletion: &min,
		})

		assert.True(t, strings.HasPrefix(where, "WHERE "))
		assert.Contains(t, where, "ILIKE ANY($1::text[])")
		assert.Contains(t, where, "p.location ILIKE $2")
		assert.Contains(t, where, "p.availability = $3")
		assert.Contains(t, where, "p.profile_completion >= $4")
		assert.Equal(t, 3, strings.Count(where, " AND "))

		require.Len(t, args, 4)
		assert.Equal(t, pq.Array([]string{"%React%", "%node%"}), args[0])
		assert.Equal(t, "%Berlin%", args[1])
		assert.Equal(t, domain.AvailabilityAvailable, args[2])
		assert.Equal(t, 50.0, args[3])
	})

	t.Run("placeholders stay dense when filters are skipped", func(t *testing.T) {
		min := 0.0
		where, args := buildSearchFilter(domain.SearchCriteria{MinCompletion: &min, Location: "Lagos"})
		assert.Contains(t, where, "p.location ILIKE $1")
		assert.Contains(t, where, "p.profile_completion >= $2")
		assert.Len(t, args, 2)
	})
}

func TestBuildSearchQueries(t *testing.T) {
	c := domain.SearchCriteria{Availability: domain.AvailabilityOpenToOffers, Page: 3, Limit: 10}
	listSQL, listArgs, countSQL, countArgs := buildSearchQueries(c)

	assert.Contains(t, countSQL, "SELECT COUNT(*) FROM developer_profiles p WHERE p.availability = $1")
	assert.Equal(t, []interface{}{domain.AvailabilityOpenToOffers}, countArgs)

	assert.Contains(t, listSQL, "ORDER BY p.profile_completion DESC, p.created_at DESC LIMIT $2 OFFSET $3")
	assert.Equal(t, []interface{}{domain.AvailabilityOpenToOffers, 10, 20}, listArgs)
}
