package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecofinds/internal/domain"
)

// ProfileRepository defines the interface for member profile data access
type ProfileRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUsername retrieves a profile by its username
func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := `
		SELECT username, email, full_name, bio, location, phone, joined_at
		FROM profiles
		WHERE username = $1
	`

	profile := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&profile.Username,
		&profile.Email,
		&profile.FullName,
		&profile.Bio,
		&profile.Location,
		&profile.Phone,
		&profile.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	profile.JoinedAt = domain.DateOf(profile.JoinedAt)

	return profile, nil
}

// Update saves the editable fields of a profile
func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET email = $2, full_name = $3, bio = $4, location = $5, phone = $6
		WHERE username = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		profile.Username,
		profile.Email,
		profile.FullName,
		profile.Bio,
		profile.Location,
		profile.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}
