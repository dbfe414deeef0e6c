package domain

import "strings"

// Completion section names, in scoring order.
const (
	SectionTitle       = "title"
	SectionBio         = "bio"
	SectionLocation    = "location"
	SectionSkills      = "skills"
	SectionExperience  = "experience"
	SectionEducation   = "education"
	SectionProjects    = "projects"
	SectionSocialLinks = "socialLinks"
)

// MinSkillsForCompletion is the skill count at which the skills section counts.
const MinSkillsForCompletion = 3

type completionRule struct {
	section   string
	weight    int
	satisfied func(p *DeveloperProfile) bool
}

// Weights sum to 100. Sections are all-or-nothing.
var completionRules = []completionRule{
	{SectionTitle, 10, func(p *DeveloperProfile) bool { return notBlank(p.Title) }},
	{SectionBio, 10, func(p *DeveloperProfile) bool { return notBlank(p.Bio) }},
	{SectionLocation, 5, func(p *DeveloperProfile) bool { return notBlank(p.Location) }},
	{SectionSkills, 20, func(p *DeveloperProfile) bool { return len(p.Skills) >= MinSkillsForCompletion }},
	{SectionExperience, 20, func(p *DeveloperProfile) bool { return len(p.Experience) >= 1 }},
	{SectionEducation, 10, func(p *DeveloperProfile) bool { return len(p.Education) >= 1 }},
	{SectionProjects, 15, func(p *DeveloperProfile) bool { return len(p.Projects) >= 1 }},
	{SectionSocialLinks, 10, func(p *DeveloperProfile) bool { return p.SocialLinks.HasAny() }},
}

type CompletionSection struct {
	Section  string `json:"section"`
	Weight   int    `json:"weight"`
	Complete bool   `json:"complete"`
}

// CalculateCompletion scores a profile from 0 to 100. A nil profile scores 0.
func CalculateCompletion(p *DeveloperProfile) int {
	score := 0
	for _, s := range CompletionBreakdown(p) {
		if s.Complete {
			score += s.Weight
		}
	}
	return score
}

// CompletionBreakdown reports every scored section and whether it is filled.
func CompletionBreakdown(p *DeveloperProfile) []CompletionSection {
	out := make([]CompletionSection, 0, len(completionRules))
	for _, r := range completionRules {
		out = append(out, CompletionSection{
			Section:  r.section,
			Weight:   r.weight,
			Complete: p != nil && r.satisfied(p),
		})
	}
	return out
}

// HasAny reports whether at least one link is non-empty.
func (s SocialLinks) HasAny() bool {
	return s.Github != "" || s.LinkedIn != "" || s.Portfolio != "" || s.Twitter != ""
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
