package memory

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type messageRepo struct {
	s  *Store
	tx bool
}

func copyMessage(m models.Message) *models.Message {
	m.MeasurementID = clonePtr(m.MeasurementID)
	return &m
}

func (r *messageRepo) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	err := r.s.do(ctx, r.tx, func(st *state) error {
		for _, id := range []int64{m.SenderID, m.ReceiverID} {
			if _, ok := st.users[id]; !ok {
				return fkError("user", id)
			}
		}
		if m.MeasurementID != nil {
			if _, ok := st.measurements[*m.MeasurementID]; !ok {
				return fkError("measurement", *m.MeasurementID)
			}
		}
		st.lastMessage++
		m.ID = st.lastMessage
		m.CreatedAt = r.s.now()
		st.messages[m.ID] = *copyMessage(*m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	var out *models.Message
	err := r.s.do(ctx, r.tx, func(st *state) error {
		m, ok := st.messages[id]
		if !ok {
			return common.ErrorMessageNotFound
		}
		out = copyMessage(m)
		return nil
	})
	return out, err
}

func (r *messageRepo) MarkRead(ctx context.Context, id int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		m, ok := st.messages[id]
		if !ok {
			return common.ErrorMessageNotFound
		}
		m.HasRead = true
		st.messages[id] = m
		return nil
	})
}

func (r *messageRepo) Delete(ctx context.Context, id int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.messages[id]; !ok {
			return common.ErrorMessageNotFound
		}
		delete(st.messages, id)
		return nil
	})
}

func (r *messageRepo) ListByReceiver(ctx context.Context, receiverID int64, unreadOnly bool) ([]*models.Message, error) {
	out := make([]*models.Message, 0)
	err := r.s.do(ctx, r.tx, func(st *state) error {
		for _, m := range st.messages {
			if m.ReceiverID == receiverID && !(unreadOnly && m.HasRead) {
				out = append(out, copyMessage(m))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b *models.Message) int { return int(a.ID - b.ID) })
	return out, nil
}
