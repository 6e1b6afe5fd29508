// Package handlers implements rpcapi.RecipexServiceServer on top of the
// services. Handlers translate wire messages to service calls and back and
// return domain errors untouched; each transport maps them with the outcome
// package.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/models"
	"github.com/dmitrijs2005/recipex/internal/server/outcome"
	"github.com/dmitrijs2005/recipex/internal/server/services"
	"github.com/dmitrijs2005/recipex/internal/server/vitals"
)

// Greeting is the message of Hello.
const Greeting = "Hello World!"

// Services groups the business services the handlers dispatch to.
type Services struct {
	Users        *services.UserService
	Relations    *services.RelationService
	Measurements *services.MeasurementService
	Messages     *services.MessageService
	Export       *services.ExportService
}

type Handlers struct {
	rpcapi.UnimplementedRecipexServiceServer
	svc Services
}

var _ rpcapi.RecipexServiceServer = (*Handlers)(nil)

func New(svc Services) *Handlers {
	return &Handlers{svc: svc}
}

func ok(msg string) *rpcapi.Envelope {
	return &rpcapi.Envelope{Code: outcome.EnvelopeCode(http.StatusOK), Message: msg}
}

func created(msg string, id int64) *rpcapi.Envelope {
	return &rpcapi.Envelope{
		Code:    outcome.EnvelopeCode(http.StatusCreated),
		Message: msg,
		Payload: strconv.FormatInt(id, 10),
	}
}

func (h *Handlers) Hello(ctx context.Context, _ *rpcapi.Void) (*rpcapi.Envelope, error) {
	return ok(Greeting), nil
}

func (h *Handlers) RegisterUser(ctx context.Context, req *rpcapi.RegisterUserRequest) (*rpcapi.Envelope, error) {
	id, err := h.svc.Users.Register(ctx, services.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Surname:  req.Surname,
		Birth:    req.Birth,
		Sex:      req.Sex,
		City:     req.City,
		Address:  req.Address,
		Field:    req.Field,
		YearsExp: req.YearsExp,
	})
	if err != nil {
		return nil, err
	}
	return created("User registered.", id), nil
}

func (h *Handlers) UpdateUser(ctx context.Context, req *rpcapi.UpdateUserRequest) (*rpcapi.Envelope, error) {
	err := h.svc.Users.Update(ctx, services.UpdateInput{
		ID:       req.ID,
		Name:     req.Name,
		Surname:  req.Surname,
		Birth:    req.Birth,
		Sex:      req.Sex,
		City:     req.City,
		Address:  req.Address,
		Field:    req.Field,
		YearsExp: req.YearsExp,
	})
	if err != nil {
		return nil, err
	}
	return ok("User updated."), nil
}

func (h *Handlers) GetUser(ctx context.Context, req *rpcapi.UserIDRequest) (*rpcapi.UserInfo, error) {
	p, err := h.svc.Users.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(p)
	info.Response = *ok("User info retrieved.")
	return info, nil
}

func (h *Handlers) DeleteUser(ctx context.Context, req *rpcapi.UserIDRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Users.Delete(ctx, req.ID); err != nil {
		return nil, err
	}
	return ok("User deleted."), nil
}

func (h *Handlers) UpdateRelatives(ctx context.Context, req *rpcapi.RelationsRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Relations.UpdateRelatives(ctx, req.ID, req.ToAdd, req.ToDel); err != nil {
		return nil, err
	}
	return ok("Relatives updated."), nil
}

func (h *Handlers) UpdateCaregivers(ctx context.Context, req *rpcapi.RelationsRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Relations.UpdateCaregivers(ctx, req.ID, req.ToAdd, req.ToDel); err != nil {
		return nil, err
	}
	return ok("Caregivers updated."), nil
}

func (h *Handlers) UpdatePatients(ctx context.Context, req *rpcapi.RelationsRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Relations.UpdatePatients(ctx, req.ID, req.ToAdd, req.ToDel); err != nil {
		return nil, err
	}
	return ok("Patients updated."), nil
}

func (h *Handlers) UpdateFirstAidInfo(ctx context.Context, req *rpcapi.FirstAidRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Relations.AssignFirstAid(ctx, req.ID, req.PCPhysician, req.VisitingNurse); err != nil {
		return nil, err
	}
	return ok("First aid info updated."), nil
}

func toUserInfo(p *models.Profile) *rpcapi.UserInfo {
	info := &rpcapi.UserInfo{
		ID:            p.ID,
		Email:         p.Email,
		Name:          p.Name,
		Surname:       p.Surname,
		Birth:         p.Birth.Format(common.DateLayout),
		Sex:           p.Sex,
		City:          p.City,
		Address:       p.Address,
		PCPhysician:   p.PCPhysicianID,
		VisitingNurse: p.VisitingNurseID,
		Relatives:     orEmpty(p.Relatives),
		Caregivers:    orEmpty(p.Caregivers),
		Patients:      orEmpty(p.Patients),
	}
	if p.Caregiver != nil {
		info.Field = p.Caregiver.Field
		info.YearsExp = p.Caregiver.YearsExp
	}
	return info
}

func orEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func toMeasurementInfo(m *models.Measurement) rpcapi.MeasurementInfo {
	return rpcapi.MeasurementInfo{
		ID:       m.ID,
		DateTime: vitals.FormatTimestamp(m.DateTime),
		Kind:     string(m.Kind),
		Values:   m.Values,
	}
}

func toMessageInfo(m *models.Message) rpcapi.MessageInfo {
	return rpcapi.MessageInfo{
		ID:          m.ID,
		Sender:      m.SenderID,
		Receiver:    m.ReceiverID,
		HasRead:     m.HasRead,
		Message:     m.Body,
		Measurement: m.MeasurementID,
	}
}
