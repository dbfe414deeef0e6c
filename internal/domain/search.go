package domain

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultSearchLimit = 12
	MaxSearchLimit     = 50
	TopSkillsLimit     = 10
)

// SearchQuery is the raw, unvalidated recruiter input as it arrives on the
// query string.
type SearchQuery struct {
	Skills        string `form:"skills"`
	Location      string `form:"location"`
	Availability  string `form:"availability"`
	MinCompletion string `form:"minCompletion"`
	Page          string `form:"page"`
	Limit         string `form:"limit"`
}

// SearchCriteria is the normalised filter. Zero values impose no constraint.
type SearchCriteria struct {
	Skills        []string `json:"skills,omitempty"`
	Location      string   `json:"location,omitempty"`
	Availability  string   `json:"availability,omitempty"`
	MinCompletion *float64 `json:"minCompletion,omitempty"`
	Page          int      `json:"page"`
	Limit         int      `json:"limit"`
}

// Offset is the number of rows skipped before the current page.
func (c SearchCriteria) Offset() int {
	return (c.Page - 1) * c.Limit
}

// ParseSearchCriteria normalises raw input. Invalid filters are dropped and
// pagination is clamped; it never fails.
func ParseSearchCriteria(q SearchQuery) SearchCriteria {
	c := SearchCriteria{
		Skills:   splitSkillTokens(q.Skills),
		Location: strings.TrimSpace(q.Location),
		Page:     1,
		Limit:    DefaultSearchLimit,
	}

	if IsValidAvailability(q.Availability) {
		c.Availability = q.Availability
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(q.MinCompletion), 64); err == nil {
		if !math.IsNaN(v) && v >= 0 && v <= 100 {
			c.MinCompletion = &v
		}
	}

	if p, err := strconv.Atoi(strings.TrimSpace(q.Page)); err == nil && p > 1 {
		c.Page = p
	}

	// 0 and non-numeric fall back to the default, negatives clamp to 1
	if l, err := strconv.Atoi(strings.TrimSpace(q.Limit)); err == nil && l != 0 {
		c.Limit = min(MaxSearchLimit, max(1, l))
	}

	return c
}

func splitSkillTokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tokens []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count for a result set.
func NewPagination(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

type SearchResult struct {
	Data       []DeveloperProfile `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int64  `json:"count"`
}

type SearchStats struct {
	TotalDevelopers     int64        `json:"totalDevelopers"`
	AvailableDevelopers int64        `json:"availableDevelopers"`
	CompletedProfiles   int64        `json:"completedProfiles"`
	TopSkills           []SkillCount `json:"topSkills"`
}

// SearchCache stores search pages and statistics. Implementations must
// treat an unavailable backend as a miss.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// Generation returns the current invalidation counter.
	Generation(ctx context.Context) (int64, error)
	// Invalidate bumps the counter so every previously cached key is unreachable.
	Invalidate(ctx context.Context) error
}

type SearchUsecase interface {
	SearchDevelopers(ctx context.Context, caller Identity, query SearchQuery) (*SearchResult, error)
	GetDeveloperProfile(ctx context.Context, caller Identity, userID string) (*DeveloperProfile, error)
	GetStats(ctx context.Context, caller Identity) (*SearchStats, error)
}
