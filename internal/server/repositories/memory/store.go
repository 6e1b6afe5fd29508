// Package memory is an in-process implementation of the repositories and of
// dbx.Transactor. It backs development runs (-d memory) and service tests.
//
// One mutex guards all state. A transaction holds it from begin to end and
// restores a snapshot if the function fails, so transactions are serializable.
// Calls made outside a transaction take the mutex per call.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/caregivers"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/measurements"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/messages"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/relations"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/users"
)

var (
	errNoSQL      = errors.New("memory store: raw SQL is not supported")
	errForeignKey = errors.New("memory store: foreign key violation")
)

type pair [2]int64

type state struct {
	lastUser, lastMeasurement, lastMessage int64

	users        map[int64]models.User
	emails       map[string]int64
	caregivers   map[int64]models.Caregiver
	relatives    map[pair]struct{} // both directions are present
	care         map[pair]struct{} // {patient, caregiver}
	measurements map[int64]models.Measurement
	messages     map[int64]models.Message
}

func newState() state {
	return state{
		users:        map[int64]models.User{},
		emails:       map[string]int64{},
		caregivers:   map[int64]models.Caregiver{},
		relatives:    map[pair]struct{}{},
		care:         map[pair]struct{}{},
		measurements: map[int64]models.Measurement{},
		messages:     map[int64]models.Message{},
	}
}

// clone copies the maps. Stored values are replaced, never mutated in place,
// so copying the maps is enough.
func (s state) clone() state {
	out := s
	out.users = maps.Clone(s.users)
	out.emails = maps.Clone(s.emails)
	out.caregivers = maps.Clone(s.caregivers)
	out.relatives = maps.Clone(s.relatives)
	out.care = maps.Clone(s.care)
	out.measurements = maps.Clone(s.measurements)
	out.messages = maps.Clone(s.messages)
	return out
}

// Store holds every entity in memory.
type Store struct {
	mu  sync.Mutex
	st  state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{st: newState(), now: func() time.Time { return time.Now().UTC() }}
}

// handle is the DBTX handed out by the store. It carries no connection; it
// only tells repositories whether they run inside a transaction.
type handle struct {
	inTx bool
}

func (handle) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoSQL
}

func (handle) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoSQL
}

func (handle) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func inTx(db dbx.DBTX) bool {
	h, ok := db.(handle)
	return ok && h.inTx
}

// Conn returns a non-transactional handle.
func (s *Store) Conn() dbx.DBTX {
	return handle{}
}

// WithTx runs fn under the store lock and rolls back to the state at begin
// when fn returns an error or panics.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) (err error) {
	if err := ctx.Err(); err != nil {
		return dbx.Unavailable(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
		}
	}()

	return fn(ctx, handle{inTx: true})
}

// do runs fn against the state, locking unless the caller already holds the
// lock through WithTx.
func (s *Store) do(ctx context.Context, tx bool, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return dbx.Unavailable(err)
	}
	if !tx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(&s.st)
}

func (s *Store) Users(db dbx.DBTX) users.Repository {
	return &userRepo{s: s, tx: inTx(db)}
}

func (s *Store) Caregivers(db dbx.DBTX) caregivers.Repository {
	return &caregiverRepo{s: s, tx: inTx(db)}
}

func (s *Store) Relations(db dbx.DBTX) relations.Repository {
	return &relationRepo{s: s, tx: inTx(db)}
}

func (s *Store) Measurements(db dbx.DBTX) measurements.Repository {
	return &measurementRepo{s: s, tx: inTx(db)}
}

func (s *Store) Messages(db dbx.DBTX) messages.Repository {
	return &messageRepo{s: s, tx: inTx(db)}
}

func fkError(what string, id int64) error {
	return dbx.Unavailable(fmt.Errorf("%w: %s %d", errForeignKey, what, id))
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
