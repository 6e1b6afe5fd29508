package users

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByIDForUpdate reads the user and locks the row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// ClearFirstAid drops pc_physician / visiting_nurse pointers of userID
	// that refer to caregiverID.
	ClearFirstAid(ctx context.Context, userID, caregiverID int64) error
	Delete(ctx context.Context, id int64) error
}
