package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository interface {
	// GetOrCreate returns the profile, creating an empty one on first access.
	GetOrCreate(ctx context.Context, userID, email string) (*domain.Profile, error)
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error)
}

type PGProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) ProfileRepository {
	return &PGProfileRepository{db: db}
}

const profileColumns = `user_id, email, username, first_name, last_name, phone_number, profile_picture_url, created_at`

func (r *PGProfileRepository) GetOrCreate(ctx context.Context, userID, email string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, email) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
			SET email = CASE WHEN profiles.email = '' THEN EXCLUDED.email ELSE profiles.email END
		RETURNING `+profileColumns, userID, email)
	return scanProfile(row)
}

func (r *PGProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id=$1`, userID)
	return scanProfile(row)
}

// Update only touches the columns set in upd.
func (r *PGProfileRepository) Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE profiles SET
			username = COALESCE($2, username),
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			phone_number = COALESCE($5, phone_number),
			profile_picture_url = COALESCE($6, profile_picture_url),
			updated_at = now()
		WHERE user_id = $1
		RETURNING `+profileColumns,
		userID, upd.Username, upd.FirstName, upd.LastName, upd.PhoneNumber, upd.ProfilePictureURL)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p         domain.Profile
		id        string
		createdAt time.Time
	)
	if err := row.Scan(&id, &p.Email, &p.Username, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.ProfilePictureURL, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.ID = domain.ID(id)
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &p, nil
}

var _ ProfileRepository = (*PGProfileRepository)(nil)
