package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/server/events"
	"github.com/dmitrijs2005/recipex/internal/server/vitals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_SendAndRead(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	doc := e.registerCaregiver(t, "d@x.io", "gp")
	patient := e.register(t, "p@x.io")
	mid, err := e.measurements.Add(ctx, MeasurementInput{UserID: patient, DateTime: "2024-03-01 08:30:00", Kind: "SpO2", Values: vitals.Values{SpO2: ptr(91.0)}})
	require.NoError(t, err)

	id, err := e.messages.Send(ctx, SendInput{SenderID: patient, ReceiverID: doc, Body: " low oxygen ", MeasurementID: &mid})
	require.NoError(t, err)

	m, err := e.messages.Get(ctx, doc, id)
	require.NoError(t, err)
	assert.Equal(t, "low oxygen", m.Body)
	assert.False(t, m.HasRead)
	assert.Equal(t, mid, *m.MeasurementID)

	unread, err := e.messages.ListUnread(ctx, doc)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, e.messages.MarkRead(ctx, doc, id))
	require.NoError(t, e.messages.MarkRead(ctx, doc, id), "marking twice is fine")

	unread, err = e.messages.ListUnread(ctx, doc)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := e.messages.List(ctx, doc)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].HasRead)

	var sent []events.Event
	for _, ev := range e.pub.published() {
		if ev.Type == events.MessageSent {
			sent = append(sent, ev)
		}
	}
	require.Len(t, sent, 1)
	assert.Equal(t, id, sent[0].EntityID)
	assert.Equal(t, doc, sent[0].UserID)
}

func TestMessageService_SendErrorsCreateNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.register(t, "a@x.io")
	b := e.register(t, "b@x.io")

	tests := []struct {
		name string
		in   SendInput
		want error
	}{
		{"unknown sender", SendInput{SenderID: 404, ReceiverID: b, Body: "x"}, common.ErrorUserNotFound},
		{"unknown receiver", SendInput{SenderID: a, ReceiverID: 404, Body: "x"}, common.ErrorUserNotFound},
		{"unknown measurement", SendInput{SenderID: a, ReceiverID: b, Body: "x", MeasurementID: ptr(int64(404))}, common.ErrorMeasurementNotFound},
		{"empty body", SendInput{SenderID: a, ReceiverID: b, Body: "  "}, common.ErrorMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.messages.Send(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := e.messages.List(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, e.pub.published())
}

func TestMessageService_OwnershipChecks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.register(t, "a@x.io")
	b := e.register(t, "b@x.io")
	id, err := e.messages.Send(ctx, SendInput{SenderID: a, ReceiverID: b, Body: "hello"})
	require.NoError(t, err)

	_, err = e.messages.Get(ctx, a, id)
	assert.ErrorIs(t, err, common.ErrorMessageNotFound, "the sender does not own it")
	assert.ErrorIs(t, e.messages.MarkRead(ctx, a, id), common.ErrorMessageNotFound)
	assert.ErrorIs(t, e.messages.Delete(ctx, a, id), common.ErrorMessageNotFound)
	assert.ErrorIs(t, e.messages.Delete(ctx, 404, id), common.ErrorUserNotFound)
	_, err = e.messages.List(ctx, 404)
	assert.ErrorIs(t, err, common.ErrorUserNotFound)

	require.NoError(t, e.messages.Delete(ctx, b, id))
	_, err = e.messages.Get(ctx, b, id)
	assert.ErrorIs(t, err, common.ErrorMessageNotFound)
}

func TestMessageService_DeletedMeasurementDetaches(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.register(t, "a@x.io")
	b := e.register(t, "b@x.io")
	mid, err := e.measurements.Add(ctx, MeasurementInput{UserID: a, DateTime: "2024-03-01 08:30:00", Kind: "RR", Values: vitals.Values{Respirations: ptr(int64(16))}})
	require.NoError(t, err)
	id, err := e.messages.Send(ctx, SendInput{SenderID: a, ReceiverID: b, Body: "see this", MeasurementID: &mid})
	require.NoError(t, err)

	require.NoError(t, e.measurements.Delete(ctx, a, mid))

	m, err := e.messages.Get(ctx, b, id)
	require.NoError(t, err)
	assert.Nil(t, m.MeasurementID)
}
