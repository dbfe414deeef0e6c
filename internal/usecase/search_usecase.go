package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"
	"devhire-backend/pkg/logger"
)

type searchUsecase struct {
	repo  domain.ProfileRepository
	cache domain.SearchCache
	ttl   time.Duration
}

func NewSearchUsecase(repo domain.ProfileRepository, cache domain.SearchCache, ttl time.Duration) domain.SearchUsecase {
	return &searchUsecase{repo: repo, cache: cache, ttl: ttl}
}

func (u *searchUsecase) SearchDevelopers(ctx context.Context, caller domain.Identity, query domain.SearchQuery) (*domain.SearchResult, error) {
	if err := requireRecruiter(caller); err != nil {
		return nil, err
	}

	criteria := domain.ParseSearchCriteria(query)

	key, cacheable := u.cacheKey(ctx, "list", &criteria)
	if cacheable {
		var cached domain.SearchResult
		if hit, _ := u.cache.GetJSON(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	profiles, total, err := u.repo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	result := &domain.SearchResult{
		Data:       profiles,
		Pagination: domain.NewPagination(total, criteria.Page, criteria.Limit),
	}

	if cacheable {
		u.store(ctx, key, result)
	}
	return result, nil
}

func (u *searchUsecase) GetDeveloperProfile(ctx context.Context, caller domain.Identity, userID string) (*domain.DeveloperProfile, error) {
	if err := requireRecruiter(caller); err != nil {
		return nil, err
	}
	if !isUUID(userID) {
		return nil, apperror.InvalidInput("Invalid user ID format", nil)
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translate(err, "Developer profile not found", "")
	}
	return profile, nil
}

func (u *searchUsecase) GetStats(ctx context.Context, caller domain.Identity) (*domain.SearchStats, error) {
	if err := requireRecruiter(caller); err != nil {
		return nil, err
	}

	key, cacheable := u.cacheKey(ctx, "stats", nil)
	if cacheable {
		var cached domain.SearchStats
		if hit, _ := u.cache.GetJSON(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	stats, err := u.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if cacheable {
		u.store(ctx, key, stats)
	}
	return stats, nil
}

// cacheKey derives a key bound to the current cache generation. It reports
// false when the generation cannot be read, in which case the cache is
// skipped for this request.
func (u *searchUsecase) cacheKey(ctx context.Context, kind string, criteria *domain.SearchCriteria) (string, bool) {
	gen, err := u.cache.Generation(ctx)
	if err != nil {
		return "", false
	}
	if criteria == nil {
		return fmt.Sprintf("search:%d:%s", gen, kind), true
	}

	b, err := json.Marshal(normalizeForKey(*criteria))
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("search:%d:%s:%s", gen, kind, hex.EncodeToString(sum[:])), true
}

func (u *searchUsecase) store(ctx context.Context, key string, value any) {
	if err := u.cache.SetJSON(ctx, key, value, u.ttl); err != nil {
		logger.Log.Warn().Err(err).Str("key", key).Msg("Failed to write search cache")
	}
}

// normalizeForKey maps criteria that produce identical results onto the
// same value. Skill matching is case-insensitive and order-free.
func normalizeForKey(c domain.SearchCriteria) domain.SearchCriteria {
	if len(c.Skills) > 0 {
		skills := make([]string, len(c.Skills))
		for i, s := range c.Skills {
			skills[i] = strings.ToLower(s)
		}
		sort.Strings(skills)
		c.Skills = skills
	}
	c.Location = strings.ToLower(c.Location)
	return c
}
