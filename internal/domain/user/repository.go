package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	// FindByUsername ищет без учета регистра.
	FindByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, u User) error
}
