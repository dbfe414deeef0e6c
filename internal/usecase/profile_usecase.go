package usecase

import (
	"context"
	"strings"

	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"
	"devhire-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const profileNotFoundMsg = "Profile not found"

type profileUsecase struct {
	repo     domain.ProfileRepository
	cache    domain.SearchCache
	validate *validator.Validate
}

func NewProfileUsecase(repo domain.ProfileRepository, cache domain.SearchCache, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{repo: repo, cache: cache, validate: validate}
}

// mutate applies fn to the caller's profile, rescores it and retires cached
// search pages that may include the old version.
func (u *profileUsecase) mutate(ctx context.Context, caller domain.Identity, createIfMissing bool, fn domain.ProfileMutation) (*domain.DeveloperProfile, error) {
	profile, err := u.repo.Mutate(ctx, caller.UserID, createIfMissing, func(p *domain.DeveloperProfile) error {
		if err := fn(p); err != nil {
			return err
		}
		p.ProfileCompletion = domain.CalculateCompletion(p)
		return nil
	})
	if err != nil {
		return nil, translate(err, profileNotFoundMsg, "Profile already exists")
	}

	if err := u.cache.Invalidate(ctx); err != nil {
		logger.Log.Warn().Err(err).Str("user_id", caller.UserID).Msg("Failed to invalidate search cache")
	}

	logger.Log.Debug().
		Str("user_id", caller.UserID).
		Int("profile_completion", profile.ProfileCompletion).
		Msg("Profile updated")
	return profile, nil
}

func (u *profileUsecase) GetOwnProfile(ctx context.Context, caller domain.Identity) (*domain.DeveloperProfile, error) {
	if err := requireDeveloper(caller); err != nil {
		return nil, err
	}
	profile, created, err := u.repo.GetOrCreate(ctx, caller.UserID)
	if err != nil {
		return nil, translate(err, "User not found", "Profile already exists")
	}
	if created {
		// A new row changes search totals and stats.
		if err := u.cache.Invalidate(ctx); err != nil {
			logger.Log.Warn().Err(err).Str("user_id", caller.UserID).Msg("Failed to invalidate search cache")
		}
	}
	return profile, nil
}

func (u *profileUsecase) GetProfileByUserID(ctx context.Context, caller domain.Identity, userID string) (*domain.DeveloperProfile, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	if !isUUID(userID) {
		return nil, apperror.InvalidInput("Invalid user ID format", nil)
	}
	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translate(err, profileNotFoundMsg, "")
	}
	return profile, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, caller domain.Identity, update domain.ProfileUpdate) (*domain.DeveloperProfile, error) {
	if err := requireDeveloper(caller); err != nil {
		return nil, err
	}
	if err := u.validate.Struct(update); err != nil {
		return nil, apperror.InvalidInput("Invalid profile data", err)
	}

	return u.mutate(ctx, caller, true, func(p *domain.DeveloperProfile) error {
		if update.Title != nil {
			p.Title = *update.Title
		}
		if update.Bio != nil {
			p.Bio = *update.Bio
		}
		if update.Location != nil {
			p.Location = *update.Location
		}
		if update.Availability != nil {
			p.Availability = *update.Availability
		}
		if update.SocialLinks != nil {
			p.SocialLinks = *update.SocialLinks
		}
		return nil
	})
}

func (u *profileUsecase) GetCompletion(ctx context.Context, caller domain.Identity) (*domain.CompletionReport, error) {
	profile, err := u.GetOwnProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &domain.CompletionReport{
		ProfileCompletion: profile.ProfileCompletion,
		Sections:          domain.CompletionBreakdown(profile),
	}, nil
}

func (u *profileUsecase) AddSkills(ctx context.Context, caller domain.Identity, skills []string) (*domain.SkillsResult, error) {
	if err := requireDeveloper(caller); err != nil {
		return nil, err
	}
	if skills == nil {
		return nil, apperror.InvalidInput("Skills must be an array", nil)
	}

	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if err := u.validate.Var(cleaned, "dive,max=100"); err != nil {
		return nil, apperror.InvalidInput("Skills must be at most 100 characters each", err)
	}

	profile, err := u.mutate(ctx, caller, true, func(p *domain.DeveloperProfile) error {
		p.Skills = unionSkills(p.Skills, cleaned)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.SkillsResult{Skills: profile.Skills, ProfileCompletion: profile.ProfileCompletion}, nil
}

func (u *profileUsecase) RemoveSkill(ctx context.Context, caller domain.Identity, skill string) (*domain.SkillsResult, error) {
	if err := requireDeveloper(caller); err != nil {
		return nil, err
	}

	profile, err := u.mutate(ctx, caller, false, func(p *domain.DeveloperProfile) error {
		kept := p.Skills[:0]
		for _, s := range p.Skills {
			if s != skill {
				kept = append(kept, s)
			}
		}
		p.Skills = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.SkillsResult{Skills: profile.Skills, ProfileCompletion: profile.ProfileCompletion}, nil
}

func (u *profileUsecase) AddExperience(ctx context.Context, caller domain.Identity, entry domain.Experience) (*domain.DeveloperProfile, error) {
	if err := requireDeveloper(caller); err != nil {
		return nil, err
	}
	entry.Normalize()
	if err := u.validate.Struct(entry); err != nil {
		return nil, apperror.InvalidInput("Invalid experience entry", err)
	}

	return u.mutate(ctx, caller, true, func(p *domain.DeveloperProfile) error {
		p.Experience = append(p.Experience, entry)
		return nil
	})
}

func (u *profileUsecase) AddEducation(ctx context.Context, caller domain.Identity, entry domain.Education) (*domain.DeveloperProfile, error) {
	if err := requireDeveloper(caller); err != nil {
		return nil, err
	}
	entry.Normalize()
	if err := u.validate.Struct(entry); err != nil {
		return nil, apperror.InvalidInput("Invalid education entry", err)
	}

	return u.mutate(ctx, caller, true, func(p *domain.DeveloperProfile) error {
		p.Education = append(p.Education, entry)
		return nil
	})
}

func (u *profileUsecase) AddProject(ctx context.Context, caller domain.Identity, entry domain.Project) (*domain.DeveloperProfile, error) {
	if err := requireDeveloper(caller); err != nil {
		return nil, err
	}
	entry.Normalize()
	if err := u.validate.Struct(entry); err != nil {
		return nil, apperror.InvalidInput("Invalid project entry", err)
	}

	return u.mutate(ctx, caller, true, func(p *domain.DeveloperProfile) error {
		p.Projects = append(p.Projects, entry)
		return nil
	})
}

// unionSkills appends the unseen entries of add to existing. Duplicates
// already present in existing are collapsed too.
func unionSkills(existing, add []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(add))
	out := make([]string, 0, len(existing)+len(add))
	for _, list := range [][]string{existing, add} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
