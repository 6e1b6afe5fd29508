// Package outcome maps service results onto the transport vocabulary: gRPC
// status codes, HTTP statuses and the envelope code strings returned to
// clients ("200 OK", "404 Not Found", ...).
package outcome

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/recipex/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Outcome is how a result is reported on every transport.
type Outcome struct {
	GRPC    codes.Code
	HTTP    int
	Message string
}

// Code renders the envelope code, e.g. "412 Precondition Failed".
func (o Outcome) Code() string {
	return EnvelopeCode(o.HTTP)
}

// EnvelopeCode renders an HTTP status as an envelope code.
func EnvelopeCode(httpStatus int) string {
	return fmt.Sprintf("%d %s", httpStatus, http.StatusText(httpStatus))
}

type rule struct {
	err    error
	grpc   codes.Code
	http   int
	opaque string
}

// Checked in order; the first match wins. Entity-specific not-found errors
// wrap ErrorNotFound and are matched through it.
var rules = []rule{
	{err: common.ErrMissingToken, grpc: codes.Unauthenticated, http: http.StatusUnauthorized},
	{err: common.ErrInvalidToken, grpc: codes.Unauthenticated, http: http.StatusUnauthorized},
	{err: common.ErrTokenExpired, grpc: codes.Unauthenticated, http: http.StatusUnauthorized},
	{err: common.ErrForbidden, grpc: codes.PermissionDenied, http: http.StatusForbidden},

	{err: common.ErrorNotFound, grpc: codes.NotFound, http: http.StatusNotFound},
	{err: common.ErrorUnauthorized, grpc: codes.PermissionDenied, http: http.StatusUnauthorized},
	{err: common.ErrorDuplicateEmail, grpc: codes.AlreadyExists, http: http.StatusPreconditionFailed},
	{err: common.ErrorAlreadyAssigned, grpc: codes.AlreadyExists, http: http.StatusPreconditionFailed},
	{err: common.ErrorNotACaregiver, grpc: codes.FailedPrecondition, http: http.StatusPreconditionFailed},
	{err: common.ErrorInvalidKind, grpc: codes.InvalidArgument, http: http.StatusPreconditionFailed},
	{err: common.ErrorMissingField, grpc: codes.InvalidArgument, http: http.StatusPreconditionFailed},
	{err: common.ErrorOutOfRange, grpc: codes.InvalidArgument, http: http.StatusPreconditionFailed},
	{err: common.ErrorBadTimestamp, grpc: codes.InvalidArgument, http: http.StatusBadRequest},
	{err: common.ErrorBadBirthDate, grpc: codes.InvalidArgument, http: http.StatusBadRequest},

	{err: common.ErrorStoreUnavailable, grpc: codes.Unavailable, http: http.StatusServiceUnavailable, opaque: common.ErrorStoreUnavailable.Error()},
}

// Of classifies err. Unknown errors are internal and their text is not
// exposed.
func Of(err error) Outcome {
	for _, r := range rules {
		if !errors.Is(err, r.err) {
			continue
		}
		msg := err.Error()
		if r.opaque != "" {
			msg = r.opaque
		}
		return Outcome{GRPC: r.grpc, HTTP: r.http, Message: msg}
	}
	return Outcome{GRPC: codes.Internal, HTTP: http.StatusInternalServerError, Message: common.ErrorInternal.Error()}
}

// Status converts err into a gRPC status error carrying the envelope message.
func Status(err error) error {
	o := Of(err)
	return status.Error(o.GRPC, o.Message)
}
