package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/memory"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

type env struct {
	store        *memory.Store
	pub          *recordingPublisher
	users        *UserService
	relations    *RelationService
	measurements *MeasurementService
	messages     *MessageService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memory.NewStore()
	pub := &recordingPublisher{}
	log := logging.Nop{}
	return &env{
		store:        s,
		pub:          pub,
		users:        NewUserService(s, s, log),
		relations:    NewRelationService(s, s, log),
		measurements: NewMeasurementService(s, s, pub, log),
		messages:     NewMessageService(s, s, pub, log),
	}
}

func (e *env) register(t *testing.T, email string) int64 {
	t.Helper()
	id, err := e.users.Register(context.Background(), RegisterInput{
		Email: email, Name: "Ada", Surname: "Lovelace", Birth: "1990-12-10",
	})
	require.NoError(t, err)
	return id
}

func (e *env) registerCaregiver(t *testing.T, email, field string) int64 {
	t.Helper()
	id, err := e.users.Register(context.Background(), RegisterInput{
		Email: email, Name: "Gregory", Surname: "House", Birth: "1959-06-11",
		Field: field, YearsExp: ptr(int64(20)),
	})
	require.NoError(t, err)
	return id
}

var errBoom = errors.New("boom")
