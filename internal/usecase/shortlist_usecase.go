package usecase

import (
	"context"
	"strings"

	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"
	"devhire-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type shortlistUsecase struct {
	repo     domain.ShortlistRepository
	validate *validator.Validate
}

func NewShortlistUsecase(repo domain.ShortlistRepository, validate *validator.Validate) domain.ShortlistUsecase {
	return &shortlistUsecase{repo: repo, validate: validate}
}

func (u *shortlistUsecase) Add(ctx context.Context, caller domain.Identity, req domain.AddShortlistRequest) (*domain.ShortlistEntry, error) {
	if err := requireRecruiter(caller); err != nil {
		return nil, err
	}
	req.Notes = strings.TrimSpace(req.Notes)
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.InvalidInput("Invalid shortlist request", err)
	}

	entry := &domain.ShortlistEntry{
		RecruiterID: caller.UserID,
		DeveloperID: req.DeveloperID,
		Notes:       req.Notes,
	}
	if err := u.repo.Create(ctx, entry); err != nil {
		return nil, translate(err, "Developer not found", "Developer already in shortlist")
	}

	logger.Log.Info().
		Str("recruiter_id", caller.UserID).
		Str("developer_id", req.DeveloperID).
		Msg("Developer shortlisted")
	return entry, nil
}

func (u *shortlistUsecase) Remove(ctx context.Context, caller domain.Identity, developerID string) error {
	if err := requireRecruiter(caller); err != nil {
		return err
	}
	// A malformed id cannot name an existing entry
	if !isUUID(developerID) {
		return translate(domain.ErrNotFound, "Developer not in shortlist", "")
	}

	if err := u.repo.Delete(ctx, caller.UserID, developerID); err != nil {
		return translate(err, "Developer not in shortlist", "")
	}

	logger.Log.Info().
		Str("recruiter_id", caller.UserID).
		Str("developer_id", developerID).
		Msg("Developer removed from shortlist")
	return nil
}

func (u *shortlistUsecase) Check(ctx context.Context, caller domain.Identity, developerID string) (bool, error) {
	if err := requireRecruiter(caller); err != nil {
		return false, err
	}
	if !isUUID(developerID) {
		return false, nil
	}
	return u.repo.Exists(ctx, caller.UserID, developerID)
}

func (u *shortlistUsecase) List(ctx context.Context, caller domain.Identity) ([]domain.ShortlistView, error) {
	if err := requireRecruiter(caller); err != nil {
		return nil, err
	}
	return u.repo.ListByRecruiter(ctx, caller.UserID)
}

func (u *shortlistUsecase) Export(ctx context.Context, caller domain.Identity, format string) ([]byte, string, error) {
	if err := requireRecruiter(caller); err != nil {
		return nil, "", err
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != domain.ExportFormatXLSX && format != domain.ExportFormatCSV {
		return nil, "", apperror.InvalidInput("Unsupported export format: "+format, nil)
	}

	views, err := u.repo.ListByRecruiter(ctx, caller.UserID)
	if err != nil {
		return nil, "", err
	}

	if format == domain.ExportFormatCSV {
		return exportShortlistCSV(views)
	}
	return exportShortlistExcel(views)
}
