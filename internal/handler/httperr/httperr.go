package httperr

import (
	"errors"
	"net/http"

	"roomstay-admin/internal/pkg/errs"
	"roomstay-admin/internal/upstream"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithDomainError maps the data layer's taxonomy onto the HTTP
// surface, one distinguishable human-readable message per class.
func AbortWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrMutationInFlight):
		AbortWithError(c, http.StatusConflict, err, "This action is already in progress", nil)
	case errors.Is(err, errs.ErrNotOwnedByCaller):
		AbortWithError(c, http.StatusForbidden, err, "Record not owned by you", nil)
	case errors.Is(err, errs.ErrRecordNotFound), upstream.IsKind(err, upstream.KindNotFound):
		AbortWithError(c, http.StatusNotFound, err, "Record not found", nil)
	case errors.Is(err, errs.ErrNotLoggedIn),
		errors.Is(err, errs.ErrSessionExpired),
		upstream.IsKind(err, upstream.KindUnauthorized):
		AbortWithError(c, http.StatusUnauthorized, err, "Please log in again", nil)
	case upstream.IsKind(err, upstream.KindForbidden):
		AbortWithError(c, http.StatusForbidden, err, upstreamMessage(err, "Forbidden"), nil)
	case errors.Is(err, errs.ErrDomainValidation):
		AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case upstream.IsKind(err, upstream.KindValidation):
		AbortWithError(c, http.StatusBadRequest, err, upstreamMessage(err, "Invalid payload"), nil)
	case upstream.IsKind(err, upstream.KindServer):
		AbortWithError(c, http.StatusBadGateway, err, "Upstream server error, try again later", nil)
	case upstream.IsKind(err, upstream.KindUnavailable):
		AbortWithError(c, http.StatusBadGateway, err, "Upstream unreachable", nil)
	default:
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// upstreamMessage surfaces the upstream's own wording where it gave
// one.
func upstreamMessage(err error, fallbackMsg string) string {
	var apiErr upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message() != "" {
		return apiErr.Message()
	}
	return fallbackMsg
}
