package usecase

import (
	"errors"
	"net/http"

	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"

	"github.com/google/uuid"
)

// translate turns repository sentinels into client-facing errors. Anything
// unrecognised is returned as is and rendered as a 500.
func translate(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperror.New(http.StatusNotFound, notFoundMsg, err)
	case errors.Is(err, domain.ErrConflict):
		return apperror.New(http.StatusConflict, conflictMsg, err)
	}
	return err
}

func requireAuthenticated(caller domain.Identity) error {
	if caller.UserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	return nil
}

func requireDeveloper(caller domain.Identity) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if !caller.IsDeveloper() {
		return apperror.Forbidden("Only developers can access this resource")
	}
	return nil
}

func requireRecruiter(caller domain.Identity) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if !caller.IsRecruiter() {
		return apperror.Forbidden("Only recruiters can access this resource")
	}
	return nil
}

func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
