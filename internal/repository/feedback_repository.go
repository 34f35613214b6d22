package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepository interface {
	// Stats returns the feedback count and the mean rating (0 when there is none).
	Stats(ctx context.Context) (count int, avgRating float64, err error)
}

type FeedbackRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &FeedbackRepositoryImpl{
		pool: pool,
	}
}

func (r *FeedbackRepositoryImpl) Stats(ctx context.Context) (int, float64, error) {
	var count int
	var avg float64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*), COALESCE(avg(rating), 0)::float8 FROM feedback`,
	).Scan(&count, &avg)
	if err != nil {
		return 0, 0, err
	}
	return count, avg, nil
}
