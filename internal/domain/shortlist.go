package domain

import (
	"context"
	"time"
)

type ShortlistEntry struct {
	ID          string    `json:"id"`
	RecruiterID string    `json:"recruiterId"`
	DeveloperID string    `json:"developerId"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ShortlistView is an entry joined with the developer's profile. Profile is
// nil when the developer has no profile (yet or anymore).
type ShortlistView struct {
	ShortlistID string            `json:"shortlistId"`
	DeveloperID string            `json:"developerId"`
	Notes       string            `json:"notes"`
	CreatedAt   time.Time         `json:"createdAt"`
	Profile     *DeveloperProfile `json:"profile"`
}

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

type AddShortlistRequest struct {
	DeveloperID string `json:"developerId" validate:"required,uuid"`
	Notes       string `json:"notes" validate:"max=1000"`
}

type ShortlistRepository interface {
	// Create returns ErrConflict when the pair already exists.
	Create(ctx context.Context, entry *ShortlistEntry) error
	// Delete returns ErrNotFound when the pair does not exist.
	Delete(ctx context.Context, recruiterID, developerID string) error
	Exists(ctx context.Context, recruiterID, developerID string) (bool, error)
	// ListByRecruiter returns entries newest first, joined with profiles.
	ListByRecruiter(ctx context.Context, recruiterID string) ([]ShortlistView, error)
}

type ShortlistUsecase interface {
	Add(ctx context.Context, caller Identity, req AddShortlistRequest) (*ShortlistEntry, error)
	Remove(ctx context.Context, caller Identity, developerID string) error
	Check(ctx context.Context, caller Identity, developerID string) (bool, error)
	List(ctx context.Context, caller Identity) ([]ShortlistView, error)
	// Export renders the shortlist as "xlsx" (default) or "csv" and returns
	// the file body with its download name.
	Export(ctx context.Context, caller Identity, format string) ([]byte, string, error)
}
