package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/auth"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/handlers"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/memory"
	"github.com/dmitrijs2005/recipex/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func newGate() *auth.Gate {
	return auth.NewGate([]byte(testSecret), auth.NewAllowList([]string{testCaller}))
}

func newHandlers() *handlers.Handlers {
	st := memory.NewStore()
	log := nopLogger{}
	return handlers.New(handlers.Services{
		Users:        services.NewUserService(st, st, log),
		Relations:    services.NewRelationService(st, st, log),
		Measurements: services.NewMeasurementService(st, st, events.Nop{}, log),
		Messages:     services.NewMessageService(st, st, events.Nop{}, log),
		Export:       services.NewExportService(st, st, nopBlobs{}, log),
	})
}

func dialBuf(t *testing.T, lis *bufconn.Listener) *rpcapi.Client {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return rpcapi.NewClient(conn)
}

func TestServe_RegisterAndGetUserUntilCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("bufnet", nopLogger{}, newHandlers(), newGate())
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	c := dialBuf(t, lis)
	callCtx := authed(t)

	env, err := c.RegisterUser(callCtx, &rpcapi.RegisterUserRequest{
		Email: "Grace@Example.com", Name: "Grace", Surname: "Hopper", Birth: "1906-12-09",
		Field: "computing",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", env.Payload)

	u, err := c.GetUser(callCtx, &rpcapi.UserIDRequest{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", u.Email)
	assert.Equal(t, "1906-12-09", u.Birth)
	assert.Equal(t, "computing", u.Field)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestServe_ReturnsWhenListenerFails(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("bufnet", nopLogger{}, newHandlers(), newGate())
	lis := bufconn.Listen(1 << 20)
	require.NoError(t, lis.Close())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), lis) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept waiting for a context that is never cancelled")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, newHandlers(), newGate())
	assert.Error(t, srv.Run(context.Background()))
}
