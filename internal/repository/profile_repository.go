package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `p.id, p.user_id, p.bio, p.company, p.position, p.skills, p.interests, p.linkedin_url,
	p.twitter_url, p.website_url, p.is_public, p.created_at, p.updated_at, u.full_name, u.avatar_url`

const profileFrom = `FROM profiles p JOIN users u ON u.id = p.user_id`

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	ListPublic(ctx context.Context) ([]*model.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, params model.UpdateProfileParams) (*model.Profile, error)
}

type ProfileRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &ProfileRepositoryImpl{
		pool: pool,
	}
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Bio,
		&p.Company,
		&p.Position,
		&p.Skills,
		&p.Interests,
		&p.LinkedInURL,
		&p.TwitterURL,
		&p.WebsiteURL,
		&p.IsPublic,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.FullName,
		&p.AvatarURL,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.user_id = $1`, profileColumns, profileFrom)
	p, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepositoryImpl) ListPublic(ctx context.Context) ([]*model.Profile, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.is_public = true ORDER BY p.created_at DESC`, profileColumns, profileFrom)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Upsert 沒有 profile 時先建立一筆空的再套用變更
func (r *ProfileRepositoryImpl) Upsert(ctx context.Context, userID uuid.UUID, params model.UpdateProfileParams) (*model.Profile, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Bio != nil {
		add("bio", *params.Bio)
	}
	if params.Company != nil {
		add("company", *params.Company)
	}
	if params.Position != nil {
		add("position", *params.Position)
	}
	if params.Skills != nil {
		add("skills", *params.Skills)
	}
	if params.Interests != nil {
		add("interests", *params.Interests)
	}
	if params.LinkedInURL != nil {
		add("linkedin_url", *params.LinkedInURL)
	}
	if params.TwitterURL != nil {
		add("twitter_url", *params.TwitterURL)
	}
	if params.WebsiteURL != nil {
		add("website_url", *params.WebsiteURL)
	}
	if params.IsPublic != nil {
		add("is_public", *params.IsPublic)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	add("updated_at", time.Now().UTC())
	args = append(args, userID)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE user_id = $%d`, strings.Join(sets, ", "), argPos)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, err
	}

	p, err := scanProfile(tx.QueryRow(ctx, fmt.Sprintf(`SELECT %s %s WHERE p.user_id = $1`, profileColumns, profileFrom), userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
