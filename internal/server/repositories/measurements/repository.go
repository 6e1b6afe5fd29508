// Package measurements persists clinical measurements owned by users.
package measurements

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Measurement) (*models.Measurement, error)
	GetByID(ctx context.Context, id int64) (*models.Measurement, error)
	Update(ctx context.Context, m *models.Measurement) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Measurement, error)
}
