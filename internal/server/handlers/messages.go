package handlers

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/services"
)

func (h *Handlers) SendMessage(ctx context.Context, req *rpcapi.SendMessageRequest) (*rpcapi.Envelope, error) {
	id, err := h.svc.Messages.Send(ctx, services.SendInput{
		SenderID:      req.Sender,
		ReceiverID:    req.Receiver,
		Body:          req.Message,
		MeasurementID: req.Measurement,
	})
	if err != nil {
		return nil, err
	}
	return created("Message sent.", id), nil
}

func (h *Handlers) GetMessage(ctx context.Context, req *rpcapi.MessageIDRequest) (*rpcapi.MessageInfo, error) {
	m, err := h.svc.Messages.Get(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	info := toMessageInfo(m)
	info.Response = ok("Message info retrieved.")
	return &info, nil
}

func (h *Handlers) ReadMessage(ctx context.Context, req *rpcapi.MessageIDRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Messages.MarkRead(ctx, req.UserID, req.ID); err != nil {
		return nil, err
	}
	return ok("Message read."), nil
}

func (h *Handlers) DeleteMessage(ctx context.Context, req *rpcapi.MessageIDRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Messages.Delete(ctx, req.UserID, req.ID); err != nil {
		return nil, err
	}
	return ok("Message deleted."), nil
}

func (h *Handlers) GetMessages(ctx context.Context, req *rpcapi.UserIDRequest) (*rpcapi.UserMessages, error) {
	ms, err := h.svc.Messages.List(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return userMessages(ms), nil
}

func (h *Handlers) GetUnreadMessages(ctx context.Context, req *rpcapi.UserIDRequest) (*rpcapi.UserMessages, error) {
	ms, err := h.svc.Messages.ListUnread(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return userMessages(ms), nil
}

func userMessages(ms []*models.Message) *rpcapi.UserMessages {
	out := &rpcapi.UserMessages{
		UserMessages: make([]rpcapi.MessageInfo, 0, len(ms)),
		Response:     *ok("Messages retrieved."),
	}
	for _, m := range ms {
		out.UserMessages = append(out.UserMessages, toMessageInfo(m))
	}
	return out
}
