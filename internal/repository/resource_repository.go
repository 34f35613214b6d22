package repository

import (
	"context"
	"errors"
	"fmt"

	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const resourceColumns = `r.id, r.title, r.description, r.url, r.file_path, r.resource_type, r.event_id, e.title,
	r.created_by, r.created_at`

const resourceFrom = `FROM resources r LEFT JOIN events e ON e.id = r.event_id`

type ResourceRepository interface {
	Search(ctx context.Context, filter model.ResourceFilter) ([]*model.Resource, int, error)
	Count(ctx context.Context, filter model.ResourceFilter) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	Create(ctx context.Context, resource *model.Resource) (*model.Resource, error)
	Update(ctx context.Context, resource *model.Resource) (*model.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResourceRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) ResourceRepository {
	return &ResourceRepositoryImpl{
		pool: pool,
	}
}

func scanResource(row rowScanner) (*model.Resource, error) {
	var res model.Resource
	err := row.Scan(
		&res.ID,
		&res.Title,
		&res.Description,
		&res.URL,
		&res.FilePath,
		&res.ResourceType,
		&res.EventID,
		&res.EventTitle,
		&res.CreatedBy,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func buildResourceWhere(filter model.ResourceFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Type != nil {
		w.where("r.resource_type = " + w.arg(*filter.Type))
	}
	w.ilikeAny(filter.Term, "r.title", "r.description")
	return w
}

func (r *ResourceRepositoryImpl) Search(ctx context.Context, filter model.ResourceFilter) ([]*model.Resource, int, error) {
	w := buildResourceWhere(filter)
	where := w.sql()
	countArgs := append([]interface{}(nil), w.args...)
	window := w.limitOffset(filter.Limit, filter.Offset)

	batch := &pgx.Batch{}
	batch.Queue(fmt.Sprintf(`SELECT %s %s %s ORDER BY r.created_at DESC%s`, resourceColumns, resourceFrom, where, window), w.args...)
	batch.Queue(fmt.Sprintf(`SELECT count(*) FROM resources r %s`, where), countArgs...)

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	rows, err := br.Query()
	if err != nil {
		return nil, 0, err
	}
	resources := make([]*model.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			rows.Close()
			return nil, 0, err
		}
		resources = append(resources, res)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

func (r *ResourceRepositoryImpl) Count(ctx context.Context, filter model.ResourceFilter) (int, error) {
	w := buildResourceWhere(filter)
	var total int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM resources r %s`, w.sql()), w.args...).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ResourceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE r.id = $1`, resourceColumns, resourceFrom)

	res, err := scanResource(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *ResourceRepositoryImpl) Create(ctx context.Context, resource *model.Resource) (*model.Resource, error) {
	query := `
		INSERT INTO resources (title, description, url, file_path, resource_type, event_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		resource.Title, resource.Description, resource.URL, resource.FilePath,
		resource.ResourceType, resource.EventID, resource.CreatedBy,
	).Scan(&resource.ID, &resource.CreatedAt)
	if err != nil {
		return nil, err
	}
	return resource, nil
}

func (r *ResourceRepositoryImpl) Update(ctx context.Context, resource *model.Resource) (*model.Resource, error) {
	query := `
		UPDATE resources
		SET title = $1, description = $2, url = $3, file_path = $4, resource_type = $5, event_id = $6
		WHERE id = $7
		RETURNING created_by, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		resource.Title, resource.Description, resource.URL, resource.FilePath,
		resource.ResourceType, resource.EventID, resource.ID,
	).Scan(&resource.CreatedBy, &resource.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}
	return resource, nil
}

func (r *ResourceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
