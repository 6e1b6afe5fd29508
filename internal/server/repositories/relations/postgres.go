package relations

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Relatives(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, `SELECT relative_id FROM user_relatives WHERE user_id = $1 ORDER BY relative_id`, userID)
}

func (r *PostgresRepository) AddRelative(ctx context.Context, userID, relativeID int64) error {
	query :=
		`INSERT INTO user_relatives (user_id, relative_id)
		 VALUES ($1, $2), ($2, $1)
		 ON CONFLICT DO NOTHING`

	return r.exec(ctx, query, userID, relativeID)
}

func (r *PostgresRepository) RemoveRelative(ctx context.Context, userID, relativeID int64) error {
	query :=
		`DELETE FROM user_relatives
		 WHERE (user_id = $1 AND relative_id = $2)
		    OR (user_id = $2 AND relative_id = $1)`

	return r.exec(ctx, query, userID, relativeID)
}

func (r *PostgresRepository) CaregiversOf(ctx context.Context, patientID int64) ([]int64, error) {
	return r.ids(ctx, `SELECT caregiver_id FROM care_relations WHERE patient_id = $1 ORDER BY caregiver_id`, patientID)
}

func (r *PostgresRepository) PatientsOf(ctx context.Context, caregiverID int64) ([]int64, error) {
	return r.ids(ctx, `SELECT patient_id FROM care_relations WHERE caregiver_id = $1 ORDER BY patient_id`, caregiverID)
}

func (r *PostgresRepository) AddCare(ctx context.Context, patientID, caregiverID int64) error {
	query :=
		`INSERT INTO care_relations (patient_id, caregiver_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`

	return r.exec(ctx, query, patientID, caregiverID)
}

func (r *PostgresRepository) RemoveCare(ctx context.Context, patientID, caregiverID int64) error {
	return r.exec(ctx, `DELETE FROM care_relations WHERE patient_id = $1 AND caregiver_id = $2`, patientID, caregiverID)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return dbx.Unavailable(err)
	}
	return nil
}

func (r *PostgresRepository) ids(ctx context.Context, query string, id int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, dbx.Unavailable(err)
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, dbx.Unavailable(err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Unavailable(err)
	}
	return out, nil
}
