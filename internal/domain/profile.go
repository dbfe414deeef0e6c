package domain

import (
	"context"
	"strings"
	"time"
)

const (
	AvailabilityAvailable    = "available"
	AvailabilityNotAvailable = "not-available"
	AvailabilityOpenToOffers = "open-to-offers"
)

// Availabilities lists the accepted availability values in display order.
var Availabilities = []string{AvailabilityAvailable, AvailabilityOpenToOffers, AvailabilityNotAvailable}

// IsValidAvailability reports whether v is one of the availability values.
func IsValidAvailability(v string) bool {
	for _, a := range Availabilities {
		if a == v {
			return true
		}
	}
	return false
}

type Experience struct {
	Company     string  `json:"company" validate:"required,not_blank,max=200"`
	Position    string  `json:"position" validate:"required,not_blank,max=200"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Current     bool    `json:"current"`
	Description string  `json:"description" validate:"max=2000"`
}

type Education struct {
	Institution string  `json:"institution" validate:"required,not_blank,max=200"`
	Degree      string  `json:"degree" validate:"required,not_blank,max=200"`
	Field       string  `json:"field" validate:"required,not_blank,max=200"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Current     bool    `json:"current"`
}

type Project struct {
	Title        string   `json:"title" validate:"required,not_blank,max=200"`
	Description  string   `json:"description" validate:"required,not_blank,max=2000"`
	Technologies []string `json:"technologies" validate:"dive,required,not_blank,max=100"`
	LiveURL      *string  `json:"liveUrl,omitempty" validate:"omitempty,url"`
	GithubURL    *string  `json:"githubUrl,omitempty" validate:"omitempty,url"`
	ImageURL     *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Normalize drops the end date of a current role and blank end dates sent by
// forms that leave the field empty.
func (e *Experience) Normalize() {
	e.EndDate = endDateOrNil(e.EndDate, e.Current)
}

func (e *Education) Normalize() {
	e.EndDate = endDateOrNil(e.EndDate, e.Current)
}

// Normalize treats blank links as absent.
func (p *Project) Normalize() {
	p.LiveURL = blankToNil(p.LiveURL)
	p.GithubURL = blankToNil(p.GithubURL)
	p.ImageURL = blankToNil(p.ImageURL)
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
}

func endDateOrNil(end *string, current bool) *string {
	if current {
		return nil
	}
	return blankToNil(end)
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

type SocialLinks struct {
	Github    string `json:"github,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
}

type DeveloperProfile struct {
	ID                int64        `json:"id"`
	UserID            string       `json:"userId"`
	User              *UserSummary `json:"user,omitempty"`
	Title             string       `json:"title"`
	Bio               string       `json:"bio"`
	Location          string       `json:"location"`
	Availability      string       `json:"availability"`
	Skills            []string     `json:"skills"`
	Experience        []Experience `json:"experience"`
	Education         []Education  `json:"education"`
	Projects          []Project    `json:"projects"`
	SocialLinks       SocialLinks  `json:"socialLinks"`
	ProfileCompletion int          `json:"profileCompletion"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// NewDeveloperProfile returns the empty profile a developer starts with.
func NewDeveloperProfile(userID string) *DeveloperProfile {
	return &DeveloperProfile{
		UserID:       userID,
		Availability: AvailabilityAvailable,
		Skills:       []string{},
		Experience:   []Experience{},
		Education:    []Education{},
		Projects:     []Project{},
	}
}

// Clone returns a deep copy so mutations never alias the caller's slices.
func (p *DeveloperProfile) Clone() *DeveloperProfile {
	if p == nil {
		return nil
	}
	c := *p
	if p.User != nil {
		u := *p.User
		c.User = &u
	}
	c.Skills = append([]string{}, p.Skills...)
	c.Experience = append([]Experience{}, p.Experience...)
	c.Education = append([]Education{}, p.Education...)
	c.Projects = make([]Project, len(p.Projects))
	for i, pr := range p.Projects {
		pr.Technologies = append([]string{}, pr.Technologies...)
		c.Projects[i] = pr
	}
	return &c
}

// ProfileUpdate carries the basic-info fields of a partial update. Nil
// fields are left untouched.
type ProfileUpdate struct {
	Title        *string      `json:"title" validate:"omitempty,max=100"`
	Bio          *string      `json:"bio" validate:"omitempty,max=2000"`
	Location     *string      `json:"location" validate:"omitempty,max=100"`
	Availability *string      `json:"availability" validate:"omitempty,availability"`
	SocialLinks  *SocialLinks `json:"socialLinks"`
}

// ProfileMutation transforms a profile in place. It receives a private copy
// owned by the current request.
type ProfileMutation func(p *DeveloperProfile) error

type ProfileRepository interface {
	// GetOrCreate returns the owner's profile, inserting an empty one first
	// if none exists. Concurrent callers for the same owner get the same row
	// and only the one that inserted it sees created=true.
	GetOrCreate(ctx context.Context, userID string) (profile *DeveloperProfile, created bool, err error)
	// GetByUserID returns ErrNotFound when the owner has no profile.
	GetByUserID(ctx context.Context, userID string) (*DeveloperProfile, error)
	// Mutate locks the owner's row, applies fn and persists the result in a
	// single transaction. With createIfMissing=false an absent profile is
	// ErrNotFound.
	Mutate(ctx context.Context, userID string, createIfMissing bool, fn ProfileMutation) (*DeveloperProfile, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]DeveloperProfile, int64, error)
	Stats(ctx context.Context) (*SearchStats, error)
}

// SkillsResult is the payload of the skill write operations.
type SkillsResult struct {
	Skills            []string `json:"skills"`
	ProfileCompletion int      `json:"profileCompletion"`
}

type CompletionReport struct {
	ProfileCompletion int                 `json:"profileCompletion"`
	Sections          []CompletionSection `json:"sections"`
}

type ProfileUsecase interface {
	GetOwnProfile(ctx context.Context, caller Identity) (*DeveloperProfile, error)
	GetProfileByUserID(ctx context.Context, caller Identity, userID string) (*DeveloperProfile, error)
	UpdateProfile(ctx context.Context, caller Identity, update ProfileUpdate) (*DeveloperProfile, error)
	GetCompletion(ctx context.Context, caller Identity) (*CompletionReport, error)
	AddSkills(ctx context.Context, caller Identity, skills []string) (*SkillsResult, error)
	RemoveSkill(ctx context.Context, caller Identity, skill string) (*SkillsResult, error)
	AddExperience(ctx context.Context, caller Identity, entry Experience) (*DeveloperProfile, error)
	AddEducation(ctx context.Context, caller Identity, entry Education) (*DeveloperProfile, error)
	AddProject(ctx context.Context, caller Identity, entry Project) (*DeveloperProfile, error)
}
