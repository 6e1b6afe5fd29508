package handlers

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/memory"
	"github.com/dmitrijs2005/recipex/internal/server/services"
	"github.com/dmitrijs2005/recipex/internal/server/vitals"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBlobs struct{}

func (stubBlobs) Put(context.Context, string, string, []byte) error { return nil }

func (stubBlobs) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://blobs.test/" + key, nil
}

func ptr[T any](v T) *T { return &v }

func newHandlers(t *testing.T) *Handlers {
	t.Helper()
	s := memory.NewStore()
	log := logging.Nop{}
	return New(Services{
		Users:        services.NewUserService(s, s, log),
		Relations:    services.NewRelationService(s, s, log),
		Measurements: services.NewMeasurementService(s, s, events.Nop{}, log),
		Messages:     services.NewMessageService(s, s, events.Nop{}, log),
		Export:       services.NewExportService(s, s, stubBlobs{}, log),
	})
}

func register(t *testing.T, h *Handlers, email, field string) int64 {
	t.Helper()
	env, err := h.RegisterUser(context.Background(), &rpcapi.RegisterUserRequest{
		Email: email, Name: "Ada", Surname: "Lovelace", Birth: "1990-12-10", Field: field,
	})
	require.NoError(t, err)
	require.Equal(t, "201 Created", env.Code)
	id, err := strconv.ParseInt(env.Payload, 10, 64)
	require.NoError(t, err)
	return id
}

func TestHello(t *testing.T) {
	env, err := newHandlers(t).Hello(context.Background(), &rpcapi.Void{})
	require.NoError(t, err)
	assert.Equal(t, &rpcapi.Envelope{Code: "200 OK", Message: Greeting}, env)
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)

	patient := register(t, h, "ada@example.com", "")
	doctor := register(t, h, "house@example.com", "Diagnostics")

	env, err := h.UpdateUser(ctx, &rpcapi.UpdateUserRequest{ID: patient, City: ptr("London")})
	require.NoError(t, err)
	assert.Equal(t, "200 OK", env.Code)

	_, err = h.UpdateFirstAidInfo(ctx, &rpcapi.FirstAidRequest{ID: patient, PCPhysician: &doctor})
	require.NoError(t, err)

	info, err := h.GetUser(ctx, &rpcapi.UserIDRequest{ID: patient})
	require.NoError(t, err)
	want := &rpcapi.UserInfo{
		ID:          patient,
		Email:       "ada@example.com",
		Name:        "Ada",
		Surname:     "Lovelace",
		Birth:       "1990-12-10",
		City:        "London",
		PCPhysician: &doctor,
		Relatives:   []int64{},
		Caregivers:  []int64{doctor},
		Patients:    []int64{},
		Response:    rpcapi.Envelope{Code: "200 OK", Message: "User info retrieved."},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("GetUser mismatch (-want +got):\n%s", diff)
	}

	doc, err := h.GetUser(ctx, &rpcapi.UserIDRequest{ID: doctor})
	require.NoError(t, err)
	assert.Equal(t, "Diagnostics", doc.Field)
	assert.Equal(t, []int64{patient}, doc.Patients)

	_, err = h.DeleteUser(ctx, &rpcapi.UserIDRequest{ID: patient})
	require.NoError(t, err)
	_, err = h.GetUser(ctx, &rpcapi.UserIDRequest{ID: patient})
	assert.ErrorIs(t, err, common.ErrorUserNotFound)
}

func TestRegisterUser_DomainErrorPassesThrough(t *testing.T) {
	h := newHandlers(t)
	register(t, h, "ada@example.com", "")

	_, err := h.RegisterUser(context.Background(), &rpcapi.RegisterUserRequest{
		Email: "ADA@example.com", Name: "A", Surname: "B", Birth: "1990-01-01",
	})
	assert.ErrorIs(t, err, common.ErrorDuplicateEmail)
}

func TestMeasurements(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	user := register(t, h, "ada@example.com", "")

	env, err := h.AddMeasurement(ctx, &rpcapi.AddMeasurementRequest{
		UserID:   user,
		DateTime: "2024-03-01 08:30:00",
		Kind:     "BP",
		Values:   vitals.Values{Systolic: ptr(int64(120)), Diastolic: ptr(int64(80)), BPM: ptr(int64(60))},
	})
	require.NoError(t, err)
	id, err := strconv.ParseInt(env.Payload, 10, 64)
	require.NoError(t, err)

	_, err = h.UpdateMeasurement(ctx, &rpcapi.UpdateMeasurementRequest{
		ID: id, UserID: user, DateTime: "2024-03-01 09:00:00", Kind: "BP",
		Values: vitals.Values{Systolic: ptr(int64(130))},
	})
	require.NoError(t, err)

	got, err := h.GetMeasurement(ctx, &rpcapi.MeasurementIDRequest{UserID: user, ID: id})
	require.NoError(t, err)
	want := &rpcapi.MeasurementInfo{
		ID:       id,
		DateTime: "2024-03-01 09:00:00",
		Kind:     "BP",
		Response: &rpcapi.Envelope{Code: "200 OK", Message: "Measurement info retrieved."},
		Values:   vitals.Values{Systolic: ptr(int64(130)), Diastolic: ptr(int64(80))},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetMeasurement mismatch (-want +got):\n%s", diff)
	}

	list, err := h.GetMeasurements(ctx, &rpcapi.UserIDRequest{ID: user})
	require.NoError(t, err)
	require.Len(t, list.Measurements, 1)
	assert.Nil(t, list.Measurements[0].Response)

	exp, err := h.ExportMeasurements(ctx, &rpcapi.UserIDRequest{ID: user})
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.test/"+exp.Key, exp.URL)

	_, err = h.DeleteMeasurement(ctx, &rpcapi.MeasurementIDRequest{UserID: user, ID: id})
	require.NoError(t, err)
	list, err = h.GetMeasurements(ctx, &rpcapi.UserIDRequest{ID: user})
	require.NoError(t, err)
	assert.Empty(t, list.Measurements)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	from := register(t, h, "ada@example.com", "")
	to := register(t, h, "house@example.com", "Diagnostics")

	env, err := h.SendMessage(ctx, &rpcapi.SendMessageRequest{Sender: from, Receiver: to, Message: "hi"})
	require.NoError(t, err)
	id, err := strconv.ParseInt(env.Payload, 10, 64)
	require.NoError(t, err)

	unread, err := h.GetUnreadMessages(ctx, &rpcapi.UserIDRequest{ID: to})
	require.NoError(t, err)
	require.Len(t, unread.UserMessages, 1)
	assert.Equal(t, rpcapi.MessageInfo{ID: id, Sender: from, Receiver: to, Message: "hi"}, unread.UserMessages[0])

	_, err = h.ReadMessage(ctx, &rpcapi.MessageIDRequest{UserID: to, ID: id})
	require.NoError(t, err)

	msg, err := h.GetMessage(ctx, &rpcapi.MessageIDRequest{UserID: to, ID: id})
	require.NoError(t, err)
	assert.True(t, msg.HasRead)

	unread, err = h.GetUnreadMessages(ctx, &rpcapi.UserIDRequest{ID: to})
	require.NoError(t, err)
	assert.Empty(t, unread.UserMessages)

	_, err = h.GetMessage(ctx, &rpcapi.MessageIDRequest{UserID: from, ID: id})
	assert.ErrorIs(t, err, common.ErrorMessageNotFound)

	_, err = h.DeleteMessage(ctx, &rpcapi.MessageIDRequest{UserID: to, ID: id})
	require.NoError(t, err)
	all, err := h.GetMessages(ctx, &rpcapi.UserIDRequest{ID: to})
	require.NoError(t, err)
	assert.Empty(t, all.UserMessages)
}

func TestRelations(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	a := register(t, h, "a@example.com", "")
	b := register(t, h, "b@example.com", "")
	nurse := register(t, h, "n@example.com", "Nursing")

	_, err := h.UpdateRelatives(ctx, &rpcapi.RelationsRequest{ID: a, ToAdd: []int64{b}})
	require.NoError(t, err)
	_, err = h.UpdateCaregivers(ctx, &rpcapi.RelationsRequest{ID: a, ToAdd: []int64{nurse}})
	require.NoError(t, err)
	_, err = h.UpdatePatients(ctx, &rpcapi.RelationsRequest{ID: nurse, ToAdd: []int64{b}})
	require.NoError(t, err)

	ub, err := h.GetUser(ctx, &rpcapi.UserIDRequest{ID: b})
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ub.Relatives)
	assert.Equal(t, []int64{nurse}, ub.Caregivers)

	_, err = h.UpdatePatients(ctx, &rpcapi.RelationsRequest{ID: a, ToAdd: []int64{b}})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
