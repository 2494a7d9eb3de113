package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindActiveByRole returns the user only when it exists, has the
	// given role and is active; nil otherwise.
	FindActiveByRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error)
}
