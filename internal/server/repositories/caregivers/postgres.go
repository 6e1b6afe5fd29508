package caregivers

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Caregiver) error {
	query :=
		`INSERT INTO caregivers (user_id, field, years_exp)
		 VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, c.UserID, c.Field, c.YearsExp); err != nil {
		return dbx.Unavailable(err)
	}
	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Caregiver, error) {
	query :=
		`SELECT user_id, field, years_exp FROM caregivers
		 WHERE user_id = $1`

	c := &models.Caregiver{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.UserID, &c.Field, &c.YearsExp); err != nil {
		return nil, dbx.NotFoundOr(err, common.ErrorCaregiverNotFound)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Caregiver) error {
	query :=
		`UPDATE caregivers SET field = $2, years_exp = $3
		 WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, c.UserID, c.Field, c.YearsExp)
	return dbx.AffectedOne(res, err, common.ErrorCaregiverNotFound)
}
