package v1

import "devhire-backend/internal/domain"

// Payload shapes of the data field, kept stable for the frontend.

type profileEnvelope struct {
	Profile *domain.DeveloperProfile `json:"profile"`
}

type experienceEnvelope struct {
	Experience        []domain.Experience `json:"experience"`
	ProfileCompletion int                 `json:"profileCompletion"`
}

type educationEnvelope struct {
	Education         []domain.Education `json:"education"`
	ProfileCompletion int                `json:"profileCompletion"`
}

type projectsEnvelope struct {
	Projects          []domain.Project `json:"projects"`
	ProfileCompletion int              `json:"profileCompletion"`
}

type statsEnvelope struct {
	Stats *domain.SearchStats `json:"stats"`
}

type shortlistEntryEnvelope struct {
	Shortlist *domain.ShortlistEntry `json:"shortlist"`
}

type shortlistEnvelope struct {
	Shortlist []domain.ShortlistView `json:"shortlist"`
}

type shortlistCheckEnvelope struct {
	IsShortlisted bool `json:"isShortlisted"`
}
