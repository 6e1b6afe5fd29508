package memory

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/server/models"
)

type userRepo struct {
	s  *Store
	tx bool
}

func copyUser(u models.User) *models.User {
	u.PCPhysicianID = clonePtr(u.PCPhysicianID)
	u.VisitingNurseID = clonePtr(u.VisitingNurseID)
	return &u
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.s.do(ctx, r.tx, func(st *state) error {
		if _, taken := st.emails[user.Email]; taken {
			return common.ErrorDuplicateEmail
		}
		st.lastUser++
		user.ID = st.lastUser
		user.CreatedAt = r.s.now()
		st.users[user.ID] = *copyUser(*user)
		st.emails[user.Email] = user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var out *models.User
	err := r.s.do(ctx, r.tx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return common.ErrorUserNotFound
		}
		out = copyUser(u)
		return nil
	})
	return out, err
}

// GetByIDForUpdate is GetByID: inside a transaction the whole store is locked.
func (r *userRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		cur, ok := st.users[user.ID]
		if !ok {
			return common.ErrorUserNotFound
		}
		for _, ref := range []*int64{user.PCPhysicianID, user.VisitingNurseID} {
			if ref != nil {
				if _, ok := st.users[*ref]; !ok {
					return fkError("user", *ref)
				}
			}
		}
		next := *copyUser(*user)
		next.Email = cur.Email
		next.CreatedAt = cur.CreatedAt
		st.users[user.ID] = next
		return nil
	})
}

func (r *userRepo) ClearFirstAid(ctx context.Context, userID, caregiverID int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return nil
		}
		st.users[userID] = clearRefs(u, caregiverID)
		return nil
	})
}

func clearRefs(u models.User, id int64) models.User {
	if u.PCPhysicianID != nil && *u.PCPhysicianID == id {
		u.PCPhysicianID = nil
	}
	if u.VisitingNurseID != nil && *u.VisitingNurseID == id {
		u.VisitingNurseID = nil
	}
	return u
}

// Delete mirrors the schema's ON DELETE rules: owned rows are removed and
// first-aid pointers at the user are cleared.
func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return common.ErrorUserNotFound
		}

		delete(st.users, id)
		delete(st.emails, u.Email)
		delete(st.caregivers, id)

		for p := range st.relatives {
			if p[0] == id || p[1] == id {
				delete(st.relatives, p)
			}
		}
		for p := range st.care {
			if p[0] == id || p[1] == id {
				delete(st.care, p)
			}
		}
		for mid, m := range st.measurements {
			if m.UserID == id {
				deleteMeasurement(st, mid)
			}
		}
		for mid, m := range st.messages {
			if m.SenderID == id || m.ReceiverID == id {
				delete(st.messages, mid)
			}
		}
		for oid, other := range st.users {
			st.users[oid] = clearRefs(other, id)
		}
		return nil
	})
}
