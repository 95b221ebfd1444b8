package database

import (
	"fmt"
	"log"

	"devconnect/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

func Connect(cfg *config.Config) (*sqlx.DB, error) {

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Connected to database successfully")
	return db, nil
}

// schema is the bootstrap DDL, safe to run on every startup.
//
// Note the absence of unique constraints on users.email, profiles.user_id and
// the like lists: the one-profile-per-user and one-like-per-user invariants
// are enforced by read-then-write logic in the service layer. A true race
// between two concurrent requests for the same subject can produce a
// duplicate; that is an accepted limitation of the data model.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT NOT NULL,
	password_hashed TEXT NOT NULL,
	avatar          TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
	id              BIGSERIAL PRIMARY KEY,
	user_id         BIGINT NOT NULL,
	company         TEXT,
	website         TEXT,
	location        TEXT,
	status          TEXT NOT NULL,
	skills          TEXT[] NOT NULL DEFAULT '{}',
	bio             TEXT,
	github_username TEXT,
	social          JSONB NOT NULL DEFAULT '{}',
	experience      JSONB NOT NULL DEFAULT '[]',
	education       JSONB NOT NULL DEFAULT '[]',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS posts (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	text       TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	avatar     TEXT NOT NULL DEFAULT '',
	likes      JSONB NOT NULL DEFAULT '[]',
	comments   JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles (user_id);
CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts (user_id);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts (created_at DESC);
`

// Migrate applies the bootstrap schema.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
