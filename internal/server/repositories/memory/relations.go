package memory

import (
	"context"
	"slices"
)

type relationRepo struct {
	s  *Store
	tx bool
}

func (r *relationRepo) collect(ctx context.Context, set func(st *state) map[pair]struct{}, key, val int, id int64) ([]int64, error) {
	out := make([]int64, 0)
	err := r.s.do(ctx, r.tx, func(st *state) error {
		for p := range set(st) {
			if p[key] == id {
				out = append(out, p[val])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}

func relativesOf(st *state) map[pair]struct{} { return st.relatives }

func careOf(st *state) map[pair]struct{} { return st.care }

func (r *relationRepo) Relatives(ctx context.Context, userID int64) ([]int64, error) {
	return r.collect(ctx, relativesOf, 0, 1, userID)
}

func (r *relationRepo) AddRelative(ctx context.Context, userID, relativeID int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		for _, id := range []int64{userID, relativeID} {
			if _, ok := st.users[id]; !ok {
				return fkError("user", id)
			}
		}
		if userID == relativeID {
			return fkError("self relation", userID)
		}
		st.relatives[pair{userID, relativeID}] = struct{}{}
		st.relatives[pair{relativeID, userID}] = struct{}{}
		return nil
	})
}

func (r *relationRepo) RemoveRelative(ctx context.Context, userID, relativeID int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		delete(st.relatives, pair{userID, relativeID})
		delete(st.relatives, pair{relativeID, userID})
		return nil
	})
}

func (r *relationRepo) CaregiversOf(ctx context.Context, patientID int64) ([]int64, error) {
	return r.collect(ctx, careOf, 0, 1, patientID)
}

func (r *relationRepo) PatientsOf(ctx context.Context, caregiverID int64) ([]int64, error) {
	return r.collect(ctx, careOf, 1, 0, caregiverID)
}

func (r *relationRepo) AddCare(ctx context.Context, patientID, caregiverID int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.users[patientID]; !ok {
			return fkError("user", patientID)
		}
		if _, ok := st.caregivers[caregiverID]; !ok {
			return fkError("caregiver", caregiverID)
		}
		st.care[pair{patientID, caregiverID}] = struct{}{}
		return nil
	})
}

func (r *relationRepo) RemoveCare(ctx context.Context, patientID, caregiverID int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		delete(st.care, pair{patientID, caregiverID})
		return nil
	})
}
