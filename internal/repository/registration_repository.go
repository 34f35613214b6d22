package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation SQLSTATE 23505
const uniqueViolation = "23505"

const registrationColumns = `g.id, g.event_id, g.user_id, g.email, g.full_name, g.phone, g.company, g.position,
	g.terms_accepted, g.privacy_accepted, g.marketing_accepted, g.status, g.created_at, g.updated_at,
	e.title, e.start_date`

const registrationFrom = `FROM event_registrations g JOIN events e ON e.id = g.event_id`

type RegistrationRepository interface {
	CountRegistered(ctx context.Context, eventID uuid.UUID) (int, error)
	ExistsActive(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, registration *model.Registration) (*model.Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error)
	ListAll(ctx context.Context) ([]*model.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error
	StatusCounts(ctx context.Context) (model.RegistrationStatusCounts, error)
	CountAll(ctx context.Context) (int, error)
	TopEvents(ctx context.Context, limit int) ([]*model.EventParticipation, error)
}

type RegistrationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &RegistrationRepositoryImpl{
		pool: pool,
	}
}

func scanRegistration(row rowScanner) (*model.Registration, error) {
	var reg model.Registration
	var eventTitle string
	var eventStart time.Time
	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Email,
		&reg.FullName,
		&reg.Phone,
		&reg.Company,
		&reg.Position,
		&reg.TermsAccepted,
		&reg.PrivacyAccepted,
		&reg.MarketingAccepted,
		&reg.Status,
		&reg.CreatedAt,
		&reg.UpdatedAt,
		&eventTitle,
		&eventStart,
	)
	if err != nil {
		return nil, err
	}
	reg.EventTitle = &eventTitle
	reg.EventStartDate = &eventStart
	return &reg, nil
}

func (r *RegistrationRepositoryImpl) listRegistrations(ctx context.Context, query string, args ...interface{}) ([]*model.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]*model.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

func (r *RegistrationRepositoryImpl) CountRegistered(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM event_registrations WHERE event_id = $1 AND status = 'registered'`,
		eventID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RegistrationRepositoryImpl) ExistsActive(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM event_registrations
			WHERE event_id = $1 AND user_id = $2 AND status = 'registered'
		)`, eventID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Create 撞到唯一索引時回傳 ErrAlreadyRegistered
func (r *RegistrationRepositoryImpl) Create(ctx context.Context, registration *model.Registration) (*model.Registration, error) {
	query := `
		INSERT INTO event_registrations (event_id, user_id, email, full_name, phone, company, position,
			terms_accepted, privacy_accepted, marketing_accepted, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		registration.EventID, registration.UserID, registration.Email, registration.FullName,
		registration.Phone, registration.Company, registration.Position,
		registration.TermsAccepted, registration.PrivacyAccepted, registration.MarketingAccepted,
		registration.Status,
	).Scan(&registration.ID, &registration.CreatedAt, &registration.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, err
	}
	return registration, nil
}

func (r *RegistrationRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE g.user_id = $1 ORDER BY g.created_at DESC`, registrationColumns, registrationFrom)
	return r.listRegistrations(ctx, query, userID)
}

func (r *RegistrationRepositoryImpl) ListAll(ctx context.Context) ([]*model.Registration, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY g.created_at DESC`, registrationColumns, registrationFrom)
	return r.listRegistrations(ctx, query)
}

func (r *RegistrationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE event_registrations SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrAlreadyRegistered
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepositoryImpl) StatusCounts(ctx context.Context) (model.RegistrationStatusCounts, error) {
	query := `
		SELECT count(*) FILTER (WHERE status = 'registered'),
			count(*) FILTER (WHERE status = 'attended'),
			count(*) FILTER (WHERE status = 'cancelled')
		FROM event_registrations
	`
	var counts model.RegistrationStatusCounts
	err := r.pool.QueryRow(ctx, query).Scan(&counts.Registered, &counts.Attended, &counts.Cancelled)
	if err != nil {
		return model.RegistrationStatusCounts{}, err
	}
	return counts, nil
}

func (r *RegistrationRepositoryImpl) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM event_registrations`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// TopEvents 依報名數排序（含 0 報名的活動）
func (r *RegistrationRepositoryImpl) TopEvents(ctx context.Context, limit int) ([]*model.EventParticipation, error) {
	query := `
		SELECT e.id, e.title, count(g.id) AS participants
		FROM events e
		LEFT JOIN event_registrations g ON g.event_id = e.id
		GROUP BY e.id, e.title
		ORDER BY participants DESC, e.title
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := make([]*model.EventParticipation, 0)
	for rows.Next() {
		var p model.EventParticipation
		if err := rows.Scan(&p.EventID, &p.Title, &p.Participants); err != nil {
			return nil, err
		}
		top = append(top, &p)
	}
	return top, rows.Err()
}
