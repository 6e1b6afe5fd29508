package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipex/internal/server/vitals"
)

// MeasurementInput is a measurement as received from a caller. DateTime uses
// common.DateTimeLayout.
type MeasurementInput struct {
	UserID   int64
	DateTime string
	Kind     string
	Values   vitals.Values
}

// MeasurementService manages the measurements owned by users.
type MeasurementService struct {
	tx     dbx.Transactor
	repos  repomanager.RepositoryManager
	events events.Publisher
	log    logging.Logger
}

func NewMeasurementService(tx dbx.Transactor, m repomanager.RepositoryManager, p events.Publisher, log logging.Logger) *MeasurementService {
	return &MeasurementService{tx: tx, repos: m, events: p, log: log}
}

// Add validates in and stores it for in.UserID. Only the fields of the
// measurement's kind are kept.
func (s *MeasurementService) Add(ctx context.Context, in MeasurementInput) (int64, error) {
	db := s.tx.Conn()
	if _, err := s.repos.Users(db).GetByID(ctx, in.UserID); err != nil {
		return 0, err
	}

	at, err := vitals.ParseTimestamp(in.DateTime)
	if err != nil {
		return 0, err
	}
	kind, err := vitals.ParseKind(in.Kind)
	if err != nil {
		return 0, err
	}
	values, err := vitals.ValidateNew(kind, in.Values)
	if err != nil {
		return 0, err
	}

	m, err := s.repos.Measurements(db).Create(ctx, &models.Measurement{
		UserID:   in.UserID,
		DateTime: at,
		Kind:     kind,
		Values:   values,
	})
	if err != nil {
		return 0, fmt.Errorf("error adding measurement: %w", err)
	}

	publish(ctx, s.events, s.log, events.Event{
		Type:     events.MeasurementAdded,
		EntityID: m.ID,
		UserID:   m.UserID,
		Data:     map[string]any{"kind": string(m.Kind), "date_time": vitals.FormatTimestamp(m.DateTime)},
	})
	return m.ID, nil
}

// Update overwrites the date-time of measurement id and the fields present in
// in.Values. in.Kind must be the stored kind.
func (s *MeasurementService) Update(ctx context.Context, id int64, in MeasurementInput) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		m, err := s.owned(ctx, tx, in.UserID, id)
		if err != nil {
			return err
		}

		at, err := vitals.ParseTimestamp(in.DateTime)
		if err != nil {
			return err
		}
		kind, err := vitals.ParseKind(in.Kind)
		if err != nil {
			return err
		}
		if kind != m.Kind {
			return fmt.Errorf("%w: measurement %d is %s, not %s", common.ErrorInvalidKind, id, m.Kind, kind)
		}

		values, err := vitals.ApplyUpdate(kind, m.Values, in.Values)
		if err != nil {
			return err
		}

		m.DateTime = at
		m.Values = values
		return s.repos.Measurements(tx).Update(ctx, m)
	})
}

// Get returns measurement id of userID.
func (s *MeasurementService) Get(ctx context.Context, userID, id int64) (*models.Measurement, error) {
	return s.owned(ctx, s.tx.Conn(), userID, id)
}

// Delete removes measurement id of userID. Messages that referred to it
// lose the reference.
func (s *MeasurementService) Delete(ctx context.Context, userID, id int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.owned(ctx, tx, userID, id); err != nil {
			return err
		}
		return s.repos.Measurements(tx).Delete(ctx, id)
	})
}

// List returns every measurement of userID ordered by date-time.
func (s *MeasurementService) List(ctx context.Context, userID int64) ([]*models.Measurement, error) {
	db := s.tx.Conn()
	if _, err := s.repos.Users(db).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repos.Measurements(db).ListByUser(ctx, userID)
}

// owned resolves the user, then the measurement, and checks ownership.
func (s *MeasurementService) owned(ctx context.Context, db dbx.DBTX, userID, id int64) (*models.Measurement, error) {
	if _, err := s.repos.Users(db).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	m, err := s.repos.Measurements(db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("%w: measurement %d is not owned by user %d", common.ErrorUnauthorized, id, userID)
	}
	return m, nil
}

// publish delivers e after the write it describes has committed. Failures
// are logged and otherwise ignored.
func publish(ctx context.Context, p events.Publisher, log logging.Logger, e events.Event) {
	if err := p.Publish(ctx, e); err != nil {
		log.Warn(ctx, "event not published", "type", e.Type, "entity_id", e.EntityID, "error", err)
	}
}
