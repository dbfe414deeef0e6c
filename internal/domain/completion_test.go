package domain_test

import (
	"testing"

	"devhire-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func fullProfile() *domain.DeveloperProfile {
	p := domain.NewDeveloperProfile("dev-1")
	p.Title = "Backend Engineer"
	p.Bio = "Builds APIs"
	p.Location = "Berlin"
	p.Skills = []string{"Go", "PostgreSQL", "Redis"}
	p.Experience = []domain.Experience{{Company: "Acme", Position: "Engineer", StartDate: "2020-01-01", Current: true}}
	p.Education = []domain.Education{{Institution: "TU", Degree: "BSc", Field: "CS", StartDate: "2015-10-01", EndDate: strPtr("2019-07-01")}}
	p.Projects = []domain.Project{{Title: "devhire", Description: "matching"}}
	p.SocialLinks = domain.SocialLinks{Github: "https://github.com/dev"}
	return p
}

func TestCalculateCompletion(t *testing.T) {
	t.Run("empty profile scores zero", func(t *testing.T) {
		assert.Equal(t, 0, domain.CalculateCompletion(domain.NewDeveloperProfile("u")))
	})

	t.Run("nil profile scores zero", func(t *testing.T) {
		assert.Equal(t, 0, domain.CalculateCompletion(nil))
	})

	t.Run("fully filled profile scores 100", func(t *testing.T) {
		assert.Equal(t, 100, domain.CalculateCompletion(fullProfile()))
	})

	t.Run("title plus three skills scores 30", func(t *testing.T) {
		p := domain.NewDeveloperProfile("u")
		p.Title = "X"
		p.Skills = []string{"a", "b", "c"}
		assert.Equal(t, 30, domain.CalculateCompletion(p))
	})

	t.Run("whitespace-only text fields do not count", func(t *testing.T) {
		p := domain.NewDeveloperProfile("u")
		p.Title = "   "
		p.Bio = "\n\t"
		p.Location = " "
		assert.Equal(t, 0, domain.CalculateCompletion(p))
	})

	t.Run("two skills earn no partial credit", func(t *testing.T) {
		p := domain.NewDeveloperProfile("u")
		p.Skills = []string{"Go", "Rust"}
		assert.Equal(t, 0, domain.CalculateCompletion(p))
	})

	t.Run("uninitialised collections count as empty", func(t *testing.T) {
		p := &domain.DeveloperProfile{Location: "Lisbon"}
		assert.Equal(t, 5, domain.CalculateCompletion(p))
	})

	t.Run("any single social link counts", func(t *testing.T) {
		p := domain.NewDeveloperProfile("u")
		p.SocialLinks.Twitter = "https://x.com/dev"
		assert.Equal(t, 10, domain.CalculateCompletion(p))
	})
}

func TestCompletionWeightsSumTo100(t *testing.T) {
	total := 0
	for _, s := range domain.CompletionBreakdown(nil) {
		assert.False(t, s.Complete)
		total += s.Weight
	}
	assert.Equal(t, 100, total)
}

func TestCompletionBreakdownMatchesScore(t *testing.T) {
	p := fullProfile()
	p.Projects = nil
	p.Bio = ""

	score := 0
	missing := []string{}
	for _, s := range domain.CompletionBreakdown(p) {
		if s.Complete {
			score += s.Weight
		} else {
			missing = append(missing, s.Section)
		}
	}

	assert.Equal(t, domain.CalculateCompletion(p), score)
	assert.Equal(t, 75, score)
	assert.ElementsMatch(t, []string{domain.SectionBio, domain.SectionProjects}, missing)
}

func TestCloneDoesNotAlias(t *testing.T) {
	p := fullProfile()
	c := p.Clone()

	c.Skills[0] = "Java"
	c.Projects[0].Technologies = append(c.Projects[0].Technologies, "Go")
	c.Experience = append(c.Experience, domain.Experience{Company: "Other"})

	assert.Equal(t, "Go", p.Skills[0])
	assert.Empty(t, p.Projects[0].Technologies)
	assert.Len(t, p.Experience, 1)
}
