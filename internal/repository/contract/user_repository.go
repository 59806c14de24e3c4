package contract

import (
	"context"

	"coursehub-be/internal/entity"
	"coursehub-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)

	CreateAccount(ctx context.Context, account *entity.Account) error
	FindAccount(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)

	CreateProfile(ctx context.Context, profile *entity.Profile) error
	FindProfile(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error)
}
