package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, title, description, start_date, end_date, location, is_virtual, image_url,
	max_participants, status, organizer_id, terms_and_conditions, created_at, updated_at`

type EventRepository interface {
	// Search returns the filtered rows for the requested window and the exact count of the whole filtered set.
	Search(ctx context.Context, filter model.EventFilter) ([]*model.Event, int, error)
	Count(ctx context.Context, filter model.EventFilter) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.EventStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error)
	Counts(ctx context.Context, now time.Time) (model.EventCounts, error)
	CountByMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&event.IsVirtual,
		&event.ImageURL,
		&event.MaxParticipants,
		&event.Status,
		&event.OrganizerID,
		&event.TermsAndConditions,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func collectEvents(rows pgx.Rows) ([]*model.Event, error) {
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// buildEventWhere 依 filter 組出 WHERE 與排序
func buildEventWhere(filter model.EventFilter) (*whereBuilder, string) {
	w := &whereBuilder{}
	if filter.Published {
		w.where("status = " + w.arg(model.EventStatusPublished))
	}
	if v := filter.Type.VirtualFilter(); v != nil {
		w.where("is_virtual = " + w.arg(*v))
	}
	w.ilikeAny(filter.Term, "title", "description", "location")

	order := "ORDER BY start_date ASC"
	switch filter.Phase {
	case model.EventPhaseUpcoming:
		w.where("start_date >= " + w.arg(filter.Now))
	case model.EventPhasePast:
		w.where("start_date < " + w.arg(filter.Now))
		order = "ORDER BY start_date DESC"
	}
	return w, order
}

func (r *EventRepositoryImpl) Search(ctx context.Context, filter model.EventFilter) ([]*model.Event, int, error) {
	w, order := buildEventWhere(filter)
	where := w.sql()
	countArgs := append([]interface{}(nil), w.args...)
	window := w.limitOffset(filter.Limit, filter.Offset)

	// rows 與 count 同一次 round trip
	batch := &pgx.Batch{}
	batch.Queue(fmt.Sprintf(`SELECT %s FROM events %s %s%s`, eventColumns, where, order, window), w.args...)
	batch.Queue(fmt.Sprintf(`SELECT count(*) FROM events %s`, where), countArgs...)

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	rows, err := br.Query()
	if err != nil {
		return nil, 0, err
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepositoryImpl) Count(ctx context.Context, filter model.EventFilter) (int, error) {
	w, _ := buildEventWhere(filter)
	var total int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM events %s`, w.sql()), w.args...).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := fmt.Sprintf(`
		INSERT INTO events (title, description, start_date, end_date, location, is_virtual, image_url,
			max_participants, status, organizer_id, terms_and_conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`, eventColumns)

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.StartDate, event.EndDate, event.Location, event.IsVirtual,
		event.ImageURL, event.MaxParticipants, event.Status, event.OrganizerID, event.TermsAndConditions,
	))
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update 以表單內容整筆覆寫（organizer_id 不變）
func (r *EventRepositoryImpl) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events
		SET title = $1, description = $2, start_date = $3, end_date = $4, location = $5, is_virtual = $6,
			image_url = $7, max_participants = $8, status = $9, terms_and_conditions = $10, updated_at = $11
		WHERE id = $12
		RETURNING %s
	`, eventColumns)

	updated, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.StartDate, event.EndDate, event.Location, event.IsVirtual,
		event.ImageURL, event.MaxParticipants, event.Status, event.TermsAndConditions, time.Now().UTC(),
		event.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *EventRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status model.EventStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) ListAll(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM events ORDER BY created_at DESC`, eventColumns))
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *EventRepositoryImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE organizer_id = $1 ORDER BY created_at DESC`, eventColumns)
	rows, err := r.pool.Query(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// Counts upcoming 不看狀態，只看 start_date > now
func (r *EventRepositoryImpl) Counts(ctx context.Context, now time.Time) (model.EventCounts, error) {
	query := `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'published'),
			count(*) FILTER (WHERE start_date > $1)
		FROM events
	`
	var counts model.EventCounts
	err := r.pool.QueryRow(ctx, query, now).Scan(&counts.Total, &counts.Published, &counts.Upcoming)
	if err != nil {
		return model.EventCounts{}, err
	}
	return counts, nil
}

func (r *EventRepositoryImpl) CountByMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error) {
	query := `
		SELECT to_char(date_trunc('month', created_at AT TIME ZONE 'UTC'), 'YYYY-MM') AS month, count(*)
		FROM events
		WHERE created_at >= $1
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := make([]model.MonthCount, 0)
	for rows.Next() {
		var mc model.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		months = append(months, mc)
	}
	return months, rows.Err()
}
