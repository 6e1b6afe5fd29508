package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/recipex/internal/rpcapi"
	"github.com/labstack/echo/v4"
)

type pathParam struct {
	name string
	dst  *int64
}

func path(name string, dst *int64) pathParam {
	return pathParam{name: name, dst: dst}
}

var binder = &echo.DefaultBinder{}

// bind decodes the JSON body into req when withBody is set, then overwrites
// the ids named by params with the path values.
func bind(c echo.Context, req any, withBody bool, params ...pathParam) error {
	if withBody {
		if err := binder.BindBody(c, req); err != nil {
			return err
		}
	}
	for _, p := range params {
		v, err := strconv.ParseInt(c.Param(p.name), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid path parameter "+p.name)
		}
		*p.dst = v
	}
	return nil
}

// serve adapts one RecipexService method to echo. Success answers with
// status; failures go through outcome.
func serve[Req, Resp any](s *Server, status int, fn func(context.Context, *Req) (*Resp, error), bindFn func(echo.Context, *Req) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(Req)
		if bindFn != nil {
			if err := bindFn(c, req); err != nil {
				return err
			}
		}
		resp, err := fn(c.Request().Context(), req)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(status, resp)
	}
}

func userID(c echo.Context, r *rpcapi.UserIDRequest) error {
	return bind(c, r, false, path("id", &r.ID))
}

func relations(c echo.Context, r *rpcapi.RelationsRequest) error {
	return bind(c, r, true, path("id", &r.ID))
}

func measurementID(c echo.Context, r *rpcapi.MeasurementIDRequest) error {
	return bind(c, r, false, path("id", &r.UserID), path("mid", &r.ID))
}

func messageID(c echo.Context, r *rpcapi.MessageIDRequest) error {
	return bind(c, r, false, path("id", &r.UserID), path("mid", &r.ID))
}

func (s *Server) routes(g *echo.Group) {
	h := s.h

	g.GET("/hello", serve(s, http.StatusOK, h.Hello, nil))

	g.POST("/users", serve(s, http.StatusCreated, h.RegisterUser, func(c echo.Context, r *rpcapi.RegisterUserRequest) error {
		return bind(c, r, true)
	}))
	g.GET("/users/:id", serve(s, http.StatusOK, h.GetUser, userID))
	g.PUT("/users/:id", serve(s, http.StatusOK, h.UpdateUser, func(c echo.Context, r *rpcapi.UpdateUserRequest) error {
		return bind(c, r, true, path("id", &r.ID))
	}))
	g.DELETE("/users/:id", serve(s, http.StatusOK, h.DeleteUser, userID))

	g.PATCH("/users/:id/relatives", serve(s, http.StatusOK, h.UpdateRelatives, relations))
	g.PATCH("/users/:id/caregivers", serve(s, http.StatusOK, h.UpdateCaregivers, relations))
	g.PATCH("/users/:id/patients", serve(s, http.StatusOK, h.UpdatePatients, relations))
	g.PATCH("/users/:id/firstaidinfo", serve(s, http.StatusOK, h.UpdateFirstAidInfo, func(c echo.Context, r *rpcapi.FirstAidRequest) error {
		return bind(c, r, true, path("id", &r.ID))
	}))

	g.GET("/users/:id/measurements", serve(s, http.StatusOK, h.GetMeasurements, userID))
	g.POST("/users/:id/measurements", serve(s, http.StatusCreated, h.AddMeasurement, func(c echo.Context, r *rpcapi.AddMeasurementRequest) error {
		return bind(c, r, true, path("id", &r.UserID))
	}))
	g.GET("/users/:id/measurements/export", serve(s, http.StatusOK, h.ExportMeasurements, userID))
	g.GET("/users/:id/measurements/:mid", serve(s, http.StatusOK, h.GetMeasurement, measurementID))
	g.PUT("/users/:id/measurements/:mid", serve(s, http.StatusOK, h.UpdateMeasurement, func(c echo.Context, r *rpcapi.UpdateMeasurementRequest) error {
		return bind(c, r, true, path("id", &r.UserID), path("mid", &r.ID))
	}))
	g.DELETE("/users/:id/measurements/:mid", serve(s, http.StatusOK, h.DeleteMeasurement, measurementID))

	g.GET("/users/:id/messages", serve(s, http.StatusOK, h.GetMessages, userID))
	g.POST("/users/:id/messages", serve(s, http.StatusCreated, h.SendMessage, func(c echo.Context, r *rpcapi.SendMessageRequest) error {
		return bind(c, r, true, path("id", &r.Receiver))
	}))
	g.GET("/users/:id/unread-messages", serve(s, http.StatusOK, h.GetUnreadMessages, userID))
	g.GET("/users/:id/messages/:mid", serve(s, http.StatusOK, h.GetMessage, messageID))
	g.PUT("/users/:id/messages/:mid", serve(s, http.StatusOK, h.ReadMessage, messageID))
	g.DELETE("/users/:id/messages/:mid", serve(s, http.StatusOK, h.DeleteMessage, messageID))
}
