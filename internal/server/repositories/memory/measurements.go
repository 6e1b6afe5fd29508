package memory

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/vitals"
)

type measurementRepo struct {
	s  *Store
	tx bool
}

func copyValues(v vitals.Values) vitals.Values {
	return vitals.Values{
		Systolic:     clonePtr(v.Systolic),
		Diastolic:    clonePtr(v.Diastolic),
		BPM:          clonePtr(v.BPM),
		Respirations: clonePtr(v.Respirations),
		SpO2:         clonePtr(v.SpO2),
		HGT:          clonePtr(v.HGT),
		Degrees:      clonePtr(v.Degrees),
		NRS:          clonePtr(v.NRS),
		CHLLevel:     clonePtr(v.CHLLevel),
	}
}

func copyMeasurement(m models.Measurement) *models.Measurement {
	m.Values = copyValues(m.Values)
	return &m
}

// deleteMeasurement drops the row and nulls message references to it.
func deleteMeasurement(st *state, id int64) {
	delete(st.measurements, id)
	for mid, msg := range st.messages {
		if msg.MeasurementID != nil && *msg.MeasurementID == id {
			msg.MeasurementID = nil
			st.messages[mid] = msg
		}
	}
}

func (r *measurementRepo) Create(ctx context.Context, m *models.Measurement) (*models.Measurement, error) {
	err := r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.users[m.UserID]; !ok {
			return fkError("user", m.UserID)
		}
		st.lastMeasurement++
		m.ID = st.lastMeasurement
		m.CreatedAt = r.s.now()
		st.measurements[m.ID] = *copyMeasurement(*m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *measurementRepo) GetByID(ctx context.Context, id int64) (*models.Measurement, error) {
	var out *models.Measurement
	err := r.s.do(ctx, r.tx, func(st *state) error {
		m, ok := st.measurements[id]
		if !ok {
			return common.ErrorMeasurementNotFound
		}
		out = copyMeasurement(m)
		return nil
	})
	return out, err
}

func (r *measurementRepo) Update(ctx context.Context, m *models.Measurement) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		cur, ok := st.measurements[m.ID]
		if !ok {
			return common.ErrorMeasurementNotFound
		}
		cur.DateTime = m.DateTime
		cur.Values = copyValues(m.Values)
		st.measurements[m.ID] = cur
		return nil
	})
}

func (r *measurementRepo) Delete(ctx context.Context, id int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.measurements[id]; !ok {
			return common.ErrorMeasurementNotFound
		}
		deleteMeasurement(st, id)
		return nil
	})
}

func (r *measurementRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Measurement, error) {
	out := make([]*models.Measurement, 0)
	err := r.s.do(ctx, r.tx, func(st *state) error {
		for _, m := range st.measurements {
			if m.UserID == userID {
				out = append(out, copyMeasurement(m))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b *models.Measurement) int {
		if c := a.DateTime.Compare(b.DateTime); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}
