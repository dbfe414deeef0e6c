package usecase

import (
	"context"
	"errors"

	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// ResolveIdentity loads the caller's authoritative role. Token claims are
// not trusted for the role.
func (u *authUsecase) ResolveIdentity(ctx context.Context, userID string) (domain.Identity, error) {
	if !isUUID(userID) {
		return domain.Identity{}, apperror.Unauthorized("Invalid token subject")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, apperror.Unauthorized("User not found")
		}
		return domain.Identity{}, err
	}

	switch user.Role {
	case domain.RoleDeveloper, domain.RoleRecruiter:
	default:
		return domain.Identity{}, apperror.Forbidden("Unsupported user role")
	}

	return domain.Identity{UserID: user.ID, Role: user.Role}, nil
}
