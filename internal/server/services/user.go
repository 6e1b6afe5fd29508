// Package services contains server-side business logic. Each service runs its
// multi-entity writes through a dbx.Transactor and reaches storage only via
// the repositories vended by a repomanager.RepositoryManager.
//
// This file implements UserService, the registry of users and their
// caregiver facet.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/repomanager"
)

// RegisterInput is the profile supplied on registration. A non-empty Field
// makes the new user a caregiver.
type RegisterInput struct {
	Email    string
	Name     string
	Surname  string
	Birth    string
	Sex      string
	City     string
	Address  string
	Field    string
	YearsExp *int64
}

// UpdateInput carries a partial profile. Nil, empty and blank fields are
// left untouched.
// Field and YearsExp apply to the caregiver facet.
type UpdateInput struct {
	ID       int64
	Name     *string
	Surname  *string
	Birth    *string
	Sex      *string
	City     *string
	Address  *string
	Field    *string
	YearsExp *int64
}

func (in UpdateInput) touchesCaregiver() bool {
	return present(in.Field) || in.YearsExp != nil
}

// UserService registers, updates, reads and deletes users.
type UserService struct {
	tx    dbx.Transactor
	repos repomanager.RepositoryManager
	log   logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(tx dbx.Transactor, m repomanager.RepositoryManager, log logging.Logger) *UserService {
	return &UserService{tx: tx, repos: m, log: log}
}

// Register creates a user and, when in.Field is set, its caregiver facet in
// the same transaction. It returns the new user's id.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	surname := strings.TrimSpace(in.Surname)

	switch {
	case email == "":
		return 0, fmt.Errorf("%w: email", common.ErrorMissingField)
	case name == "":
		return 0, fmt.Errorf("%w: name", common.ErrorMissingField)
	case surname == "":
		return 0, fmt.Errorf("%w: surname", common.ErrorMissingField)
	}

	birth, err := parseBirth(in.Birth)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Email:   email,
		Name:    name,
		Surname: surname,
		Birth:   birth,
		Sex:     strings.TrimSpace(in.Sex),
		City:    strings.TrimSpace(in.City),
		Address: strings.TrimSpace(in.Address),
	}
	field := strings.TrimSpace(in.Field)

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repos.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		if field == "" {
			return nil
		}
		return s.repos.Caregivers(tx).Create(ctx, &models.Caregiver{
			UserID:   created.ID,
			Field:    field,
			YearsExp: in.YearsExp,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("error registering user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "caregiver", field != "")
	return user.ID, nil
}

// Update overwrites the fields present in in. Caregiver fields on a user
// without a facet fail with ErrorNotACaregiver before anything is written.
func (s *UserService) Update(ctx context.Context, in UpdateInput) error {
	var birth *time.Time
	if present(in.Birth) {
		b, err := parseBirth(*in.Birth)
		if err != nil {
			return err
		}
		birth = &b
	}

	return s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)
		caregivers := s.repos.Caregivers(tx)

		user, err := users.GetByIDForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}

		var facet *models.Caregiver
		if in.touchesCaregiver() {
			facet, err = caregivers.GetByUserID(ctx, in.ID)
			if errors.Is(err, common.ErrorCaregiverNotFound) {
				return common.ErrorNotACaregiver
			}
			if err != nil {
				return err
			}
		}

		setIfPresent(&user.Name, in.Name)
		setIfPresent(&user.Surname, in.Surname)
		setIfPresent(&user.Sex, in.Sex)
		setIfPresent(&user.City, in.City)
		setIfPresent(&user.Address, in.Address)
		if birth != nil {
			user.Birth = *birth
		}
		if err := users.Update(ctx, user); err != nil {
			return err
		}

		if facet == nil {
			return nil
		}
		setIfPresent(&facet.Field, in.Field)
		if in.YearsExp != nil {
			v := *in.YearsExp
			facet.YearsExp = &v
		}
		return caregivers.Update(ctx, facet)
	})
}

// Get returns the full profile of a user: the caregiver facet if any, the
// relatives, caregivers and patients sets and the first-aid pointers.
func (s *UserService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	var p *models.Profile
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repos.Users(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		p = &models.Profile{User: *user, Patients: []int64{}}

		facet, err := s.repos.Caregivers(tx).GetByUserID(ctx, id)
		switch {
		case err == nil:
			p.Caregiver = facet
		case !errors.Is(err, common.ErrorCaregiverNotFound):
			return err
		}

		rel := s.repos.Relations(tx)
		if p.Relatives, err = rel.Relatives(ctx, id); err != nil {
			return err
		}
		if p.Caregivers, err = rel.CaregiversOf(ctx, id); err != nil {
			return err
		}
		if p.Caregiver != nil {
			if p.Patients, err = rel.PatientsOf(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the user together with its facet, relation rows,
// measurements and sent or received messages. First-aid pointers of other
// users that refer to it are cleared.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)
		if _, err := users.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func parseBirth(s string) (time.Time, error) {
	t, err := time.Parse(common.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrorBadBirthDate, s)
	}
	return t, nil
}

func present(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func setIfPresent(dst *string, v *string) {
	if present(v) {
		*dst = strings.TrimSpace(*v)
	}
}
