// Package messages persists messages between users. A message belongs to its
// receiver.
package messages

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Message) (*models.Message, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListByReceiver(ctx context.Context, receiverID int64, unreadOnly bool) ([]*models.Message, error)
}
