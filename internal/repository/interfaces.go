package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"devconnect/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Delete runs inside the account-removal transaction.
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	// Update writes back the full row, including the JSONB collections.
	Update(ctx context.Context, profile *model.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	// List returns all profiles joined with the owner's {name, avatar}.
	List(ctx context.Context) ([]model.Profile, error)
	// DeleteByUserID runs inside the account-removal transaction.
	DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	// Update writes back the likes and comments collections.
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, postID int64) error
	// DeleteByUserID runs inside the account-removal transaction.
	DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error
}
