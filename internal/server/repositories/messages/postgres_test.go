package messages

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var (
	sent = time.Date(2016, 3, 1, 9, 0, 0, 0, time.UTC)
	cols = []string{"id", "sender_id", "receiver_id", "body", "has_read", "measurement_id", "created_at"}
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mid := int64(11)

	mock.ExpectQuery(`^INSERT\s+INTO\s+messages\s*\(sender_id,\s*receiver_id,\s*body,\s*has_read,\s*measurement_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at$`).
		WithArgs(int64(1), int64(2), "check your BP", false, int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), sent))

	got, err := repo.Create(context.Background(), &models.Message{SenderID: 1, ReceiverID: 2, Body: "check your BP", MeasurementID: &mid})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
}

func TestGetByID(t *testing.T) {
	q := `^SELECT\s+id,\s*sender_id,.*FROM\s+messages\s+WHERE\s+id\s*=\s*\$1$`

	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(q).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(5), int64(1), int64(2), "hi", true, nil, sent))
	mock.ExpectQuery(q).WithArgs(int64(6)).WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, &models.Message{ID: 5, SenderID: 1, ReceiverID: 2, Body: "hi", HasRead: true, CreatedAt: sent}, got)

	_, err = repo.GetByID(context.Background(), 6)
	assert.ErrorIs(t, err, common.ErrorMessageNotFound)
}

func TestMarkRead(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `^UPDATE\s+messages\s+SET\s+has_read\s*=\s*TRUE\s+WHERE\s+id\s*=\s*\$1$`

	// Postgres reports the row as affected even when has_read was already set.
	mock.ExpectExec(q).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(6)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.MarkRead(context.Background(), 5))
	require.NoError(t, repo.MarkRead(context.Background(), 5))
	assert.ErrorIs(t, repo.MarkRead(context.Background(), 6), common.ErrorMessageNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`^DELETE\s+FROM\s+messages\s+WHERE\s+id\s*=\s*\$1$`).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
}

func TestListByReceiver(t *testing.T) {
	all := `(?s)FROM\s+messages\s+WHERE\s+receiver_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id$`
	unread := `(?s)FROM\s+messages\s+WHERE\s+receiver_id\s*=\s*\$1\s+AND\s+NOT\s+has_read\s+ORDER\s+BY\s+created_at,\s*id$`

	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(all).WithArgs(int64(2)).WillReturnRows(sqlmock.NewRows(cols).
		AddRow(int64(5), int64(1), int64(2), "a", true, nil, sent).
		AddRow(int64(6), int64(1), int64(2), "b", false, int64(11), sent))
	mock.ExpectQuery(unread).WithArgs(int64(2)).WillReturnRows(sqlmock.NewRows(cols).
		AddRow(int64(6), int64(1), int64(2), "b", false, int64(11), sent))

	got, err := repo.ListByReceiver(context.Background(), 2, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[1].MeasurementID)
	assert.Equal(t, int64(11), *got[1].MeasurementID)

	got, err = repo.ListByReceiver(context.Background(), 2, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].HasRead)
	require.NoError(t, mock.ExpectationsWereMet())
}
