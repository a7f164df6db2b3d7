package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/farhanrds/scholarship-finder/internal/model"
)

// ProfileRepo reads student profiles collected by the onboarding flow.
// Matching only ever reads profiles, so this repository is read-only.
type ProfileRepo struct{ db *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// GetByEmail fetches a profile by normalized email.  ErrProfileNotFound is
// returned when the student has not completed onboarding yet.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (model.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT id, email, education, major, funding_need, preference, created_at, updated_at
		FROM user_profiles WHERE email = ? LIMIT 1`
	var p model.UserProfile
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&p.ID, &p.Email, &p.Education, &p.Major, &p.FundingNeed, &p.Preference,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserProfile{}, ErrProfileNotFound
	}
	return p, err
}
