package handlers

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/dmitrijs2005/recipex/internal/server/services"
)

func (h *Handlers) AddMeasurement(ctx context.Context, req *rpcapi.AddMeasurementRequest) (*rpcapi.Envelope, error) {
	id, err := h.svc.Measurements.Add(ctx, services.MeasurementInput{
		UserID:   req.UserID,
		DateTime: req.DateTime,
		Kind:     req.Kind,
		Values:   req.Values,
	})
	if err != nil {
		return nil, err
	}
	return created("Measurement added.", id), nil
}

func (h *Handlers) UpdateMeasurement(ctx context.Context, req *rpcapi.UpdateMeasurementRequest) (*rpcapi.Envelope, error) {
	err := h.svc.Measurements.Update(ctx, req.ID, services.MeasurementInput{
		UserID:   req.UserID,
		DateTime: req.DateTime,
		Kind:     req.Kind,
		Values:   req.Values,
	})
	if err != nil {
		return nil, err
	}
	return ok("Measurement updated."), nil
}

func (h *Handlers) GetMeasurement(ctx context.Context, req *rpcapi.MeasurementIDRequest) (*rpcapi.MeasurementInfo, error) {
	m, err := h.svc.Measurements.Get(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, err
	}
	info := toMeasurementInfo(m)
	info.Response = ok("Measurement info retrieved.")
	return &info, nil
}

func (h *Handlers) DeleteMeasurement(ctx context.Context, req *rpcapi.MeasurementIDRequest) (*rpcapi.Envelope, error) {
	if err := h.svc.Measurements.Delete(ctx, req.UserID, req.ID); err != nil {
		return nil, err
	}
	return ok("Measurement deleted."), nil
}

func (h *Handlers) GetMeasurements(ctx context.Context, req *rpcapi.UserIDRequest) (*rpcapi.UserMeasurements, error) {
	ms, err := h.svc.Measurements.List(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	out := &rpcapi.UserMeasurements{
		Measurements: make([]rpcapi.MeasurementInfo, 0, len(ms)),
		Response:     *ok("Measurements retrieved."),
	}
	for _, m := range ms {
		out.Measurements = append(out.Measurements, toMeasurementInfo(m))
	}
	return out, nil
}

func (h *Handlers) ExportMeasurements(ctx context.Context, req *rpcapi.UserIDRequest) (*rpcapi.ExportInfo, error) {
	exp, err := h.svc.Export.ExportMeasurements(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &rpcapi.ExportInfo{Key: exp.Key, URL: exp.URL, Response: *ok("Measurements exported.")}, nil
}
