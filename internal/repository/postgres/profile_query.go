package postgres

import (
	"fmt"
	"strings"

	"devhire-backend/internal/domain"

	"github.com/lib/pq"
)

const profileColumns = `
	p.id, p.user_id, p.title, p.bio, p.location, p.availability,
	p.skills, p.experience, p.education, p.projects, p.social_links,
	p.profile_completion, p.created_at, p.updated_at,
	u.name, u.email`

const selectProfile = `SELECT ` + profileColumns + `
	FROM developer_profiles p
	JOIN users u ON u.id = p.user_id`

const searchOrder = `ORDER BY p.profile_completion DESC, p.created_at DESC`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a literal into an ILIKE substring pattern.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// buildSearchFilter renders the WHERE clause for a search. Placeholders
// start at $1; the returned args line up with them.
func buildSearchFilter(c domain.SearchCriteria) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if len(c.Skills) > 0 {
		patterns := make([]string, len(c.Skills))
		for i, s := range c.Skills {
			patterns[i] = containsPattern(s)
		}
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(p.skills) AS s(skill) WHERE s.skill ILIKE ANY($%d::text[]))", argIndex))
		args = append(args, pq.Array(patterns))
		argIndex++
	}

	if c.Location != "" {
		conditions = append(conditions, fmt.Sprintf("p.location ILIKE $%d", argIndex))
		args = append(args, containsPattern(c.Location))
		argIndex++
	}

	if c.Availability != "" {
		conditions = append(conditions, fmt.Sprintf("p.availability = $%d", argIndex))
		args = append(args, c.Availability)
		argIndex++
	}

	if c.MinCompletion != nil {
		conditions = append(conditions, fmt.Sprintf("p.profile_completion >= $%d::float8", argIndex))
		args = append(args, *c.MinCompletion)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// buildSearchQueries returns the page query and the matching count query.
func buildSearchQueries(c domain.SearchCriteria) (listSQL string, listArgs []interface{}, countSQL string, countArgs []interface{}) {
	where, args := buildSearchFilter(c)

	countSQL = fmt.Sprintf(`SELECT COUNT(*) FROM developer_profiles p %s`, where)

	n := len(args)
	listSQL = fmt.Sprintf(`%s %s %s LIMIT $%d OFFSET $%d`, selectProfile, where, searchOrder, n+1, n+2)
	listArgs = append(append([]interface{}{}, args...), c.Limit, c.Offset())

	return listSQL, listArgs, countSQL, args
}
