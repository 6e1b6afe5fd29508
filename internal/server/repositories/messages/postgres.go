package messages

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

const selectMessage = `SELECT id, sender_id, receiver_id, body, has_read, measurement_id, created_at
		 FROM messages`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Message, error) {
	m := &models.Message{}
	if err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.HasRead, &m.MeasurementID, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (sender_id, receiver_id, body, has_read, measurement_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, m.SenderID, m.ReceiverID, m.Body, m.HasRead, m.MeasurementID).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, dbx.Unavailable(err)
	}
	return m, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	m, err := scan(r.db.QueryRowContext(ctx, selectMessage+` WHERE id = $1`, id))
	if err != nil {
		return nil, dbx.NotFoundOr(err, common.ErrorMessageNotFound)
	}
	return m, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET has_read = TRUE WHERE id = $1`, id)
	return dbx.AffectedOne(res, err, common.ErrorMessageNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return dbx.AffectedOne(res, err, common.ErrorMessageNotFound)
}

func (r *PostgresRepository) ListByReceiver(ctx context.Context, receiverID int64, unreadOnly bool) ([]*models.Message, error) {
	query := selectMessage + ` WHERE receiver_id = $1`
	if unreadOnly {
		query += ` AND NOT has_read`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, receiverID)
	if err != nil {
		return nil, dbx.Unavailable(err)
	}
	defer rows.Close()

	out := make([]*models.Message, 0)
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
