// Package middleware holds the framework-independent parts of the HTTP
// transport: context plumbing, status mapping and response shapes.
package middleware

import (
	"context"
	"net/http"

	regcheck "github.com/reoring/regcheck"
)

type ctxKeyUser struct{}

// ContextWithUser attaches an accepted User to the context.
func ContextWithUser(ctx context.Context, u regcheck.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, u)
}

// UserFromContext retrieves the User stored by ContextWithUser.
func UserFromContext(ctx context.Context) (regcheck.User, bool) {
	u, ok := ctx.Value(ctxKeyUser{}).(regcheck.User)
	return u, ok
}

// StatusFor maps a report kind to an HTTP status: 400 for malformed and
// structure reports, 422 for rule violations.
func StatusFor(r regcheck.Report) int {
	switch r.Kind {
	case regcheck.ReportRules:
		return http.StatusUnprocessableEntity
	case regcheck.ReportMalformed, regcheck.ReportStructure:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}

// ErrorBody is the response body of a rejected payload.
type ErrorBody struct {
	Error     regcheck.Report `json:"error" yaml:"error"`
	RequestID string          `json:"request_id,omitempty" yaml:"request_id,omitempty"`
}

// ErrorPayload shapes a report for JSON and YAML responses.
func ErrorPayload(r regcheck.Report, requestID string) ErrorBody {
	return ErrorBody{Error: r, RequestID: requestID}
}
