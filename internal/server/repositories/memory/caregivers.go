package memory

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type caregiverRepo struct {
	s  *Store
	tx bool
}

func copyCaregiver(c models.Caregiver) *models.Caregiver {
	c.YearsExp = clonePtr(c.YearsExp)
	return &c
}

func (r *caregiverRepo) Create(ctx context.Context, c *models.Caregiver) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.users[c.UserID]; !ok {
			return fkError("user", c.UserID)
		}
		if _, exists := st.caregivers[c.UserID]; exists {
			return fkError("duplicate caregiver", c.UserID)
		}
		st.caregivers[c.UserID] = *copyCaregiver(*c)
		return nil
	})
}

func (r *caregiverRepo) GetByUserID(ctx context.Context, userID int64) (*models.Caregiver, error) {
	var out *models.Caregiver
	err := r.s.do(ctx, r.tx, func(st *state) error {
		c, ok := st.caregivers[userID]
		if !ok {
			return common.ErrorCaregiverNotFound
		}
		out = copyCaregiver(c)
		return nil
	})
	return out, err
}

func (r *caregiverRepo) Update(ctx context.Context, c *models.Caregiver) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.caregivers[c.UserID]; !ok {
			return common.ErrorCaregiverNotFound
		}
		st.caregivers[c.UserID] = *copyCaregiver(*c)
		return nil
	})
}
