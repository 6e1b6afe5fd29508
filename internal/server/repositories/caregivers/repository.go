// Package caregivers persists the caregiver facet of users.
package caregivers

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Caregiver) error
	GetByUserID(ctx context.Context, userID int64) (*models.Caregiver, error)
	Update(ctx context.Context, c *models.Caregiver) error
}
