// Package users contains the persistence layer for users.
package users

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

const selectUser = `SELECT id, email, name, surname, birth, sex, city, address,
		 pc_physician_id, visiting_nurse_id, created_at
		 FROM users
		 WHERE id = $1`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, name, surname, birth, sex, city, address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Surname, user.Birth, user.Sex, user.City, user.Address,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, dbx.Unavailable(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.get(ctx, selectUser, id)
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.get(ctx, selectUser+` FOR UPDATE`, id)
}

func (r *PostgresRepository) get(ctx context.Context, query string, id int64) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Surname, &u.Birth, &u.Sex, &u.City, &u.Address,
		&u.PCPhysicianID, &u.VisitingNurseID, &u.CreatedAt,
	)
	if err != nil {
		return nil, dbx.NotFoundOr(err, common.ErrorUserNotFound)
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET name = $2, surname = $3, birth = $4, sex = $5, city = $6, address = $7,
		     pc_physician_id = $8, visiting_nurse_id = $9
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Surname, user.Birth, user.Sex, user.City, user.Address,
		user.PCPhysicianID, user.VisitingNurseID,
	)
	return dbx.AffectedOne(res, err, common.ErrorUserNotFound)
}

func (r *PostgresRepository) ClearFirstAid(ctx context.Context, userID, caregiverID int64) error {
	query :=
		`UPDATE users
		 SET pc_physician_id = NULLIF(pc_physician_id, $2),
		     visiting_nurse_id = NULLIF(visiting_nurse_id, $2)
		 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID, caregiverID); err != nil {
		return dbx.Unavailable(err)
	}
	return nil
}

// Delete removes the user. Owned rows go with it through ON DELETE CASCADE
// and first-aid pointers of other users are nulled by ON DELETE SET NULL.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return dbx.AffectedOne(res, err, common.ErrorUserNotFound)
}
