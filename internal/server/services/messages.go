package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/repomanager"
)

// SendInput is a message to deliver. MeasurementID optionally attaches one
// of the sender's or receiver's measurements.
type SendInput struct {
	SenderID      int64
	ReceiverID    int64
	Body          string
	MeasurementID *int64
}

// MessageService delivers messages and manages the receiver's inbox.
type MessageService struct {
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	events events.Publisher
	log    logging.Logger
}

func NewMessageService(tx dbx.Transactor, m repomanager.RepositoryManager, p events.Publisher, log logging.Logger) *MessageService {
	return &MessageService{tx: tx, repos: m, events: p, log: log}
}

// Send stores an unread message owned by the receiver. Sender, receiver and
// the attached measurement must exist; nothing is stored otherwise.
func (s *MessageService) Send(ctx context.Context, in SendInput) (int64, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return 0, fmt.Errorf("%w: message", common.ErrorMissingField)
	}

	var msg *models.Message
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)
		if _, err := users.GetByID(ctx, in.SenderID); err != nil {
			return fmt.Errorf("sender: %w", err)
		}
		if _, err := users.GetByID(ctx, in.ReceiverID); err != nil {
			return fmt.Errorf("receiver: %w", err)
		}
		if in.MeasurementID != nil {
			if _, err := s.repos.Measurements(tx).GetByID(ctx, *in.MeasurementID); err != nil {
				return err
			}
		}

		var err error
		msg, err = s.repos.Messages(tx).Create(ctx, &models.Message{
			SenderID:      in.SenderID,
			ReceiverID:    in.ReceiverID,
			Body:          body,
			MeasurementID: in.MeasurementID,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	data := map[string]any{"sender_id": msg.SenderID}
	if msg.MeasurementID != nil {
		data["measurement_id"] = *msg.MeasurementID
	}
	publish(ctx, s.events, s.log, events.Event{
		Type:     events.MessageSent,
		EntityID: msg.ID,
		UserID:   msg.ReceiverID,
		Data:     data,
	})
	return msg.ID, nil
}

// Get returns message id from the inbox of userID.
func (s *MessageService) Get(ctx context.Context, userID, id int64) (*models.Message, error) {
	return s.owned(ctx, s.tx.Conn(), userID, id)
}

// MarkRead flags message id as read. Marking a read message again is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, userID, id int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		m, err := s.owned(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if m.HasRead {
			return nil
		}
		return s.repos.Messages(tx).MarkRead(ctx, id)
	})
}

// Delete removes message id from the inbox of userID.
func (s *MessageService) Delete(ctx context.Context, userID, id int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.owned(ctx, tx, userID, id); err != nil {
			return err
		}
		return s.repos.Messages(tx).Delete(ctx, id)
	})
}

// List returns every message received by userID.
func (s *MessageService) List(ctx context.Context, userID int64) ([]*models.Message, error) {
	return s.list(ctx, userID, false)
}

// ListUnread returns the messages received by userID that are not read yet.
func (s *MessageService) ListUnread(ctx context.Context, userID int64) ([]*models.Message, error) {
	return s.list(ctx, userID, true)
}

func (s *MessageService) list(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Message, error) {
	db := s.tx.Conn()
	if _, err := s.repos.Users(db).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repos.Messages(db).ListByReceiver(ctx, userID, unreadOnly)
}

// owned resolves the user and the message. A message received by somebody
// else is reported as missing.
func (s *MessageService) owned(ctx context.Context, db dbx.DBTX, userID, id int64) (*models.Message, error) {
	if _, err := s.repos.Users(db).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	m, err := s.repos.Messages(db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.ReceiverID != userID {
		return nil, common.ErrorMessageNotFound
	}
	return m, nil
}
