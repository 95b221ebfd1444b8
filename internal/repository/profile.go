package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"devconnect/internal/model"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create inserts a new profile row including its JSONB collections.
func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (user_id, company, website, location, status, skills, bio,
		                      github_username, social, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		p.UserID,
		p.Company,
		p.Website,
		p.Location,
		p.Status,
		p.Skills,
		p.Bio,
		p.GithubUsername,
		p.Social,
		p.Experience,
		p.Education,
	)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// Update writes back the full row. Callers mutate the in-memory profile
// (scalar fields or the nested collections) and persist it in one statement.
func (r *profileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `
		UPDATE profiles
		SET company = $1, website = $2, location = $3, status = $4, skills = $5,
		    bio = $6, github_username = $7, social = $8, experience = $9,
		    education = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		p.Company,
		p.Website,
		p.Location,
		p.Status,
		p.Skills,
		p.Bio,
		p.GithubUsername,
		p.Social,
		p.Experience,
		p.Education,
		p.ID,
	)

	if err := row.Scan(&p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return model.ErrProfileNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile belonging to a user.
func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	query := `
		SELECT id, user_id, company, website, location, status, skills, bio,
		       github_username, social, experience, education, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
		ORDER BY id
		LIMIT 1
	`

	var p model.Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	return &p, nil
}

// profileRow carries the owner projection joined onto the profile row.
type profileRow struct {
	model.Profile
	OwnerID     int64  `db:"owner_id"`
	OwnerName   string `db:"owner_name"`
	OwnerAvatar string `db:"owner_avatar"`
}

// List returns all profiles joined with the owner's minimal user projection.
func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.company, p.website, p.location, p.status, p.skills,
		       p.bio, p.github_username, p.social, p.experience, p.education,
		       p.created_at, p.updated_at,
		       u.id AS owner_id, u.name AS owner_name, u.avatar AS owner_avatar
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]model.Profile, len(rows))
	for i, row := range rows {
		p := row.Profile
		p.Owner = &model.UserSummary{
			ID:     row.OwnerID,
			Name:   row.OwnerName,
			Avatar: row.OwnerAvatar,
		}
		profiles[i] = p
	}

	return profiles, nil
}

// DeleteByUserID removes the user's profile as part of the account-removal
// transaction. Deleting zero rows is not an error: a user may never have
// submitted a profile.
func (r *profileRepository) DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
