package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"relocation_quest/internal/domain"
)

const userDataDDL = `
	CREATE TABLE IF NOT EXISTS user_data (
		id SERIAL PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		email TEXT,
		preferred_name TEXT,
		favorite_topics TEXT[],
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`

const userDataReturning = `RETURNING id, user_id, email, preferred_name, favorite_topics, created_at, updated_at`

type UserDataStore struct {
	db *sqlx.DB
}

func NewUserDataStore(db *sqlx.DB) *UserDataStore {
	return &UserDataStore{db: db}
}

// EnsureTable creates user_data when missing. Losing a creation race to
// another session is not an error.
func (s *UserDataStore) EnsureTable(ctx context.Context) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, userDataDDL)
	if err != nil && !isDuplicateObject(err) {
		return fmt.Errorf("ensure user_data table: %w", err)
	}
	return nil
}

// GetOrCreate returns the profile for userID, creating it seeded with
// email in the same statement. The no-op update makes RETURNING yield the
// existing row on conflict.
func (s *UserDataStore) GetOrCreate(ctx context.Context, userID string, email *string) (*domain.UserProfile, error) {
	query := `
		INSERT INTO user_data (user_id, email)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		` + userDataReturning

	profile, err := s.scanProfile(GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, userID, email))
	if err != nil {
		return nil, fmt.Errorf("get or create profile: %w", err)
	}
	return profile, nil
}

// Upsert overwrites preferred_name and favorite_topics with update, NULL
// included.
func (s *UserDataStore) Upsert(ctx context.Context, userID string, email *string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	query := `
		INSERT INTO user_data (user_id, email, preferred_name, favorite_topics, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_name = EXCLUDED.preferred_name,
			favorite_topics = EXCLUDED.favorite_topics,
			updated_at = NOW()
		` + userDataReturning

	var topics interface{}
	if update.FavoriteTopics != nil {
		topics = pq.Array(update.FavoriteTopics)
	}

	profile, err := s.scanProfile(GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		userID, email, update.PreferredName, topics))
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

func (s *UserDataStore) scanProfile(row *sqlx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Email,
		&p.PreferredName,
		pq.Array(&p.FavoriteTopics),
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
