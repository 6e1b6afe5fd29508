package measurements

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

const selectMeasurement = `SELECT id, user_id, date_time, kind,
		 systolic, diastolic, bpm, respirations, spo2, hgt, degrees, nrs, chl_level, created_at
		 FROM measurements`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Measurement, error) {
	m := &models.Measurement{}
	v := &m.Values
	err := row.Scan(&m.ID, &m.UserID, &m.DateTime, &m.Kind,
		&v.Systolic, &v.Diastolic, &v.BPM, &v.Respirations, &v.SpO2, &v.HGT, &v.Degrees, &v.NRS, &v.CHLLevel,
		&m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Measurement) (*models.Measurement, error) {
	query :=
		`INSERT INTO measurements (user_id, date_time, kind,
		     systolic, diastolic, bpm, respirations, spo2, hgt, degrees, nrs, chl_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`

	v := m.Values
	err := r.db.QueryRowContext(ctx, query, m.UserID, m.DateTime, string(m.Kind),
		v.Systolic, v.Diastolic, v.BPM, v.Respirations, v.SpO2, v.HGT, v.Degrees, v.NRS, v.CHLLevel,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, dbx.Unavailable(err)
	}
	return m, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Measurement, error) {
	m, err := scan(r.db.QueryRowContext(ctx, selectMeasurement+` WHERE id = $1`, id))
	if err != nil {
		return nil, dbx.NotFoundOr(err, common.ErrorMeasurementNotFound)
	}
	return m, nil
}

// Update rewrites the timestamp and every value column; the kind and owner
// never change.
func (r *PostgresRepository) Update(ctx context.Context, m *models.Measurement) error {
	query :=
		`UPDATE measurements
		 SET date_time = $2, systolic = $3, diastolic = $4, bpm = $5, respirations = $6,
		     spo2 = $7, hgt = $8, degrees = $9, nrs = $10, chl_level = $11
		 WHERE id = $1`

	v := m.Values
	res, err := r.db.ExecContext(ctx, query, m.ID, m.DateTime,
		v.Systolic, v.Diastolic, v.BPM, v.Respirations, v.SpO2, v.HGT, v.Degrees, v.NRS, v.CHLLevel)
	return dbx.AffectedOne(res, err, common.ErrorMeasurementNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = $1`, id)
	return dbx.AffectedOne(res, err, common.ErrorMeasurementNotFound)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Measurement, error) {
	rows, err := r.db.QueryContext(ctx, selectMeasurement+` WHERE user_id = $1 ORDER BY date_time, id`, userID)
	if err != nil {
		return nil, dbx.Unavailable(err)
	}
	defer rows.Close()

	out := make([]*models.Measurement, 0)
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, dbx.Unavailable(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Unavailable(err)
	}
	return out, nil
}
