package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/caregivers"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/users"
)

// RelationService maintains the relatives, caregivers and patients sets and
// the first-aid assignments of users.
type RelationService struct {
	tx    dbx.Transactor
	repos repomanager.RepositoryManager
	log   logging.Logger
}

func NewRelationService(tx dbx.Transactor, m repomanager.RepositoryManager, log logging.Logger) *RelationService {
	return &RelationService{tx: tx, repos: m, log: log}
}

// setEdit describes one side of a relation set: how to read the current
// members, resolve a candidate and write or drop a link.
type setEdit struct {
	current func(ctx context.Context) ([]int64, error)
	resolve func(ctx context.Context, id int64) error
	link    func(ctx context.Context, id int64) error
	unlink  func(ctx context.Context, id int64) error
}

// apply adds every id of toAdd that is not yet a member, after all of them
// resolved, then drops every id of toDel that is a member. Duplicates are
// collapsed and owner is never linked to itself.
func (e setEdit) apply(ctx context.Context, owner int64, toAdd, toDel []int64) (added, removed int, err error) {
	cur, err := e.current(ctx)
	if err != nil {
		return 0, 0, err
	}
	members := make(map[int64]struct{}, len(cur))
	for _, id := range cur {
		members[id] = struct{}{}
	}

	var adds []int64
	for _, id := range distinct(toAdd, owner) {
		if _, ok := members[id]; ok {
			continue
		}
		if err := e.resolve(ctx, id); err != nil {
			return 0, 0, err
		}
		adds = append(adds, id)
	}

	for _, id := range adds {
		if err := e.link(ctx, id); err != nil {
			return 0, 0, err
		}
		members[id] = struct{}{}
	}

	for _, id := range distinct(toDel, owner) {
		if _, ok := members[id]; !ok {
			continue
		}
		if err := e.unlink(ctx, id); err != nil {
			return 0, 0, err
		}
		removed++
	}
	return len(adds), removed, nil
}

// distinct returns ids without duplicates and without self, keeping the
// first occurrence order. Listing oneself in a relation edit is a no-op,
// not an error.
func distinct(ids []int64, self int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == self || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// UpdateRelatives edits the symmetric relatives set of userID.
func (s *RelationService) UpdateRelatives(ctx context.Context, userID int64, toAdd, toDel []int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)
		rel := s.repos.Relations(tx)

		if _, err := users.GetByIDForUpdate(ctx, userID); err != nil {
			return err
		}

		added, removed, err := setEdit{
			current: func(ctx context.Context) ([]int64, error) { return rel.Relatives(ctx, userID) },
			resolve: func(ctx context.Context, id int64) error {
				_, err := users.GetByID(ctx, id)
				return err
			},
			link:   func(ctx context.Context, id int64) error { return rel.AddRelative(ctx, userID, id) },
			unlink: func(ctx context.Context, id int64) error { return rel.RemoveRelative(ctx, userID, id) },
		}.apply(ctx, userID, toAdd, toDel)
		if err != nil {
			return err
		}

		s.log.Debug(ctx, "relatives updated", "user_id", userID, "added", added, "removed", removed)
		return nil
	})
}

// UpdateCaregivers edits the caregivers set of patientID. Added ids must
// carry a caregiver facet. Dropping a caregiver also clears a first-aid
// pointer at it.
func (s *RelationService) UpdateCaregivers(ctx context.Context, patientID int64, toAdd, toDel []int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)
		rel := s.repos.Relations(tx)
		caregivers := s.repos.Caregivers(tx)

		if _, err := users.GetByIDForUpdate(ctx, patientID); err != nil {
			return err
		}

		added, removed, err := setEdit{
			current: func(ctx context.Context) ([]int64, error) { return rel.CaregiversOf(ctx, patientID) },
			resolve: func(ctx context.Context, id int64) error {
				_, err := caregivers.GetByUserID(ctx, id)
				return err
			},
			link: func(ctx context.Context, id int64) error { return rel.AddCare(ctx, patientID, id) },
			unlink: func(ctx context.Context, id int64) error {
				if err := rel.RemoveCare(ctx, patientID, id); err != nil {
					return err
				}
				return users.ClearFirstAid(ctx, patientID, id)
			},
		}.apply(ctx, patientID, toAdd, toDel)
		if err != nil {
			return err
		}

		s.log.Debug(ctx, "caregivers updated", "user_id", patientID, "added", added, "removed", removed)
		return nil
	})
}

// UpdatePatients edits the patients set of caregiverID, which must carry a
// caregiver facet.
func (s *RelationService) UpdatePatients(ctx context.Context, caregiverID int64, toAdd, toDel []int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)
		rel := s.repos.Relations(tx)

		if _, err := users.GetByIDForUpdate(ctx, caregiverID); err != nil {
			return err
		}
		if _, err := s.repos.Caregivers(tx).GetByUserID(ctx, caregiverID); err != nil {
			return err
		}

		added, removed, err := setEdit{
			current: func(ctx context.Context) ([]int64, error) { return rel.PatientsOf(ctx, caregiverID) },
			resolve: func(ctx context.Context, id int64) error {
				_, err := users.GetByID(ctx, id)
				return err
			},
			link: func(ctx context.Context, id int64) error { return rel.AddCare(ctx, id, caregiverID) },
			unlink: func(ctx context.Context, id int64) error {
				if err := rel.RemoveCare(ctx, id, caregiverID); err != nil {
					return err
				}
				return users.ClearFirstAid(ctx, id, caregiverID)
			},
		}.apply(ctx, caregiverID, toAdd, toDel)
		if err != nil {
			return err
		}

		s.log.Debug(ctx, "patients updated", "user_id", caregiverID, "added", added, "removed", removed)
		return nil
	})
}

type firstAidRole struct {
	name string
	slot **int64
	next *int64
}

// AssignFirstAid points the user's primary care physician and/or visiting
// nurse at the given caregivers and adds the user to their patients. Every
// supplied role is checked before anything is written. A caregiver that is
// replaced keeps the user among its patients.
func (s *RelationService) AssignFirstAid(ctx context.Context, userID int64, pcPhysician, visitingNurse *int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)
		caregivers := s.repos.Caregivers(tx)
		rel := s.repos.Relations(tx)

		user, err := users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		roles := []firstAidRole{
			{name: "pc_physician", slot: &user.PCPhysicianID, next: pcPhysician},
			{name: "visiting_nurse", slot: &user.VisitingNurseID, next: visitingNurse},
		}

		for _, r := range roles {
			if r.next == nil {
				continue
			}
			if err := checkFirstAid(ctx, users, caregivers, r); err != nil {
				return err
			}
		}

		for _, r := range roles {
			if r.next != nil {
				id := *r.next
				*r.slot = &id
			}
		}
		if err := users.Update(ctx, user); err != nil {
			return err
		}

		for _, r := range roles {
			if r.next == nil {
				continue
			}
			if err := rel.AddCare(ctx, userID, *r.next); err != nil {
				return err
			}
			s.log.Info(ctx, "first aid assigned", "user_id", userID, "role", r.name, "caregiver_id", *r.next)
		}
		return nil
	})
}

func checkFirstAid(ctx context.Context, ur users.Repository, cr caregivers.Repository, r firstAidRole) error {
	if cur := *r.slot; cur != nil && *cur == *r.next {
		return fmt.Errorf("%w: %s %d", common.ErrorAlreadyAssigned, r.name, *r.next)
	}
	if _, err := ur.GetByID(ctx, *r.next); err != nil {
		return err
	}
	if _, err := cr.GetByUserID(ctx, *r.next); err != nil {
		if errors.Is(err, common.ErrorCaregiverNotFound) {
			return fmt.Errorf("%w: %s %d", common.ErrorNotACaregiver, r.name, *r.next)
		}
		return err
	}
	return nil
}
