package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/auth"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/handlers"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/memory"
	"github.com/dmitrijs2005/recipex/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "secret"
	testCaller = "doc@example.com"
)

type nopBlobs struct{}

func (nopBlobs) Put(context.Context, string, string, []byte) error { return nil }

func (nopBlobs) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://blobs.test/" + key, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := memory.NewStore()
	log := logging.Nop{}
	h := handlers.New(handlers.Services{
		Users:        services.NewUserService(st, st, log),
		Relations:    services.NewRelationService(st, st, log),
		Measurements: services.NewMeasurementService(st, st, events.Nop{}, log),
		Messages:     services.NewMessageService(st, st, events.Nop{}, log),
		Export:       services.NewExportService(st, st, nopBlobs{}, log),
	})
	gate := auth.NewGate([]byte(testSecret), auth.NewAllowList([]string{testCaller}))
	return NewServer("127.0.0.1:0", log, h, gate)
}

type client struct {
	t     *testing.T
	srv   *Server
	token string
}

func newClient(t *testing.T) *client {
	tok, err := auth.GenerateToken(testCaller, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return &client{t: t, srv: newTestServer(t), token: tok}
}

func (c *client) do(method, target string, body any, out any) *httptest.ResponseRecorder {
	c.t.Helper()
	var r *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = httptest.NewRequest(method, target, bytes.NewReader(b))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if c.token != "" {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.srv.Handler().ServeHTTP(rec, r)
	if out != nil {
		// each response is decoded into a zeroed out
		reflect.ValueOf(out).Elem().SetZero()
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func TestHealth_NoToken(t *testing.T) {
	c := newClient(t)
	c.token = ""

	rec := c.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestAuthentication(t *testing.T) {
	c := newClient(t)

	c.token = ""
	var env rpcapi.Envelope
	rec := c.do(http.MethodGet, "/hello", nil, &env)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, rpcapi.Envelope{Code: "401 Unauthorized", Message: "missing token"}, env)

	intruder, err := auth.GenerateToken("intruder@example.com", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	c.token = intruder
	rec = c.do(http.MethodGet, "/hello", nil, &env)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "403 Forbidden", env.Code)
}

func TestHello(t *testing.T) {
	c := newClient(t)

	var env rpcapi.Envelope
	rec := c.do(http.MethodGet, "/hello", nil, &env)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, rpcapi.Envelope{Code: "200 OK", Message: handlers.Greeting}, env)
}

func TestUsers(t *testing.T) {
	c := newClient(t)
	reg := rpcapi.RegisterUserRequest{Email: "ada@example.com", Name: "Ada", Surname: "Lovelace", Birth: "1990-12-10"}

	var env rpcapi.Envelope
	rec := c.do(http.MethodPost, "/users", reg, &env)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, rpcapi.Envelope{Code: "201 Created", Message: "User registered.", Payload: "1"}, env)

	rec = c.do(http.MethodPost, "/users", reg, &env)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, "412 Precondition Failed", env.Code)

	city := "London"
	rec = c.do(http.MethodPut, "/users/1", rpcapi.UpdateUserRequest{City: &city}, &env)
	assert.Equal(t, http.StatusOK, rec.Code)

	var info rpcapi.UserInfo
	rec = c.do(http.MethodGet, "/users/1", nil, &info)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "London", info.City)
	assert.Equal(t, []int64{}, info.Relatives)

	rec = c.do(http.MethodGet, "/users/abc", nil, &env)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "400 Bad Request", env.Code)

	rec = c.do(http.MethodDelete, "/users/1", nil, &env)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/users/1", nil, &env)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, rpcapi.Envelope{Code: "404 Not Found", Message: "user not found"}, env)
}

func TestMeasurementsAndMessages(t *testing.T) {
	c := newClient(t)
	var env rpcapi.Envelope
	for _, email := range []string{"a@example.com", "b@example.com"} {
		rec := c.do(http.MethodPost, "/users", rpcapi.RegisterUserRequest{
			Email: email, Name: "N", Surname: "S", Birth: "1990-12-10",
		}, &env)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	raw := map[string]any{"date_time": "2024-03-01 08:30:00", "kind": "HR", "bpm": 72}
	rec := c.do(http.MethodPost, "/users/1/measurements", raw, &env)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "1", env.Payload)

	var m rpcapi.MeasurementInfo
	rec = c.do(http.MethodGet, "/users/1/measurements/1", nil, &m)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, m.BPM)
	assert.Equal(t, int64(72), *m.BPM)

	rec = c.do(http.MethodDelete, "/users/2/measurements/1", nil, &env)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var exp rpcapi.ExportInfo
	rec = c.do(http.MethodGet, "/users/1/measurements/export", nil, &exp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://blobs.test/"+exp.Key, exp.URL)

	rec = c.do(http.MethodPost, "/users/2/messages", rpcapi.SendMessageRequest{Sender: 1, Message: "check this", Measurement: &m.ID}, &env)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "1", env.Payload)

	var inbox rpcapi.UserMessages
	rec = c.do(http.MethodGet, "/users/2/unread-messages", nil, &inbox)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, inbox.UserMessages, 1)
	assert.Equal(t, int64(2), inbox.UserMessages[0].Receiver)

	for range 2 {
		rec = c.do(http.MethodPut, "/users/2/messages/1", nil, &env)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, rpcapi.Envelope{Code: "200 OK", Message: "Message read."}, env)
	}

	rec = c.do(http.MethodGet, "/users/2/unread-messages", nil, &inbox)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, inbox.UserMessages)
}

func TestUnknownRoute(t *testing.T) {
	c := newClient(t)

	var env rpcapi.Envelope
	rec := c.do(http.MethodGet, "/nope", nil, &env)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404 Not Found", env.Code)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	srv := newTestServer(t)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
