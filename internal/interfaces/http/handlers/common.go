// Package handlers maps HTTP requests onto the application services and
// renders uniform success and error envelopes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
	"github.com/turtacn/TalentMatch-AI/internal/interfaces/http/middleware"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// envelope is the uniform response body.
type envelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respondOK renders a success envelope.
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{
		Code:    string(appErrors.ErrCodeOK),
		Message: "success",
		Data:    data,
	})
}

// respondError maps an error to its HTTP status and renders the envelope.
// AppError details stay server-side; only code and message are exposed.
func respondError(c *gin.Context, err error) {
	var ae *appErrors.AppError
	if !errors.As(err, &ae) {
		c.JSON(http.StatusInternalServerError, envelope{
			Code:    string(appErrors.ErrCodeInternal),
			Message: appErrors.ErrCodeInternal.DefaultMessage(),
		})
		return
	}
	msg := ae.Message
	if msg == "" {
		msg = ae.Code.DefaultMessage()
	}
	c.JSON(ae.Code.HTTPStatus(), envelope{
		Code:    string(ae.Code),
		Message: msg,
	})
}

// bindError converts gin binding failures into validation AppErrors.
func bindError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrCodeValidation, "request validation failed")
}

// mustIdentity extracts the authenticated caller, aborting with 401 if the
// auth middleware did not run.
func mustIdentity(c *gin.Context) (identity.Identity, bool) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, appErrors.Unauthorized("authentication required"))
		return identity.Identity{}, false
	}
	return ident, true
}

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, appErrors.InvalidParam(name+" must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDs parses a list of UUID strings, rejecting the request on the
// first invalid entry.
func parseUUIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			respondError(c, appErrors.InvalidParam("candidate ids must be UUIDs"))
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}
