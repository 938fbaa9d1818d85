package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
	"github.com/oksasatya/go-ddd-content-platform/pkg/response"
	"github.com/oksasatya/go-ddd-content-platform/pkg/validation"
)

var statusByKind = map[errs.Kind]int{
	errs.KindValidation:               http.StatusBadRequest,
	errs.KindNotFound:                 http.StatusNotFound,
	errs.KindAlreadyExists:            http.StatusConflict,
	errs.KindUnauthorized:             http.StatusForbidden,
	errs.KindAccountDeactivated:       http.StatusForbidden,
	errs.KindInvalidCredentials:       http.StatusUnauthorized,
	errs.KindPostAlreadyPublished:     http.StatusConflict,
	errs.KindDeletedCommentUpdate:     http.StatusConflict,
	errs.KindCommentOnUnpublishedPost: http.StatusForbidden,
	errs.KindInvalidState:             http.StatusConflict,
	errs.KindInvalidToken:             http.StatusUnauthorized,
	errs.KindInternal:                 http.StatusInternalServerError,
}

func init() { MustCoverAllKinds() }

// MustCoverAllKinds panics when an error kind has no HTTP status.
func MustCoverAllKinds() {
	for _, k := range errs.AllKinds() {
		if _, ok := statusByKind[k]; !ok {
			panic(fmt.Sprintf("handlers: no HTTP status for error kind %s", k))
		}
	}
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	return statusByKind[errs.KindOf(err)]
}

// writeError renders err as an error envelope. Internal failures are logged
// with their cause and answered with a generic message.
func writeError(c *gin.Context, log *logrus.Logger, err error) {
	if log == nil {
		log = helpers.NopLogger()
	}
	kind := errs.KindOf(err)
	status := statusByKind[kind]
	msg := err.Error()

	var details map[string]any
	var tagged errs.Error
	if errors.As(err, &tagged) {
		details = tagged.Details()
	}
	if kind == errs.KindInternal {
		log.WithError(err).WithField("request_id", c.GetString(response.RequestIDKey)).Error("request failed")
		msg = "internal server error"
		details = nil
	}
	response.Write(c, response.Error(c, status, msg, string(kind), details))
}

// writeBindError answers a request whose body or query could not be bound.
func writeBindError(c *gin.Context, err error) {
	details := make(map[string]any)
	for k, v := range validation.ToDetails(err) {
		details[k] = v
	}
	response.Write(c, response.Error(c, http.StatusBadRequest, "invalid payload", string(errs.KindValidation), details))
}

type pageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1,max=10000000"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

func bindPage(c *gin.Context) (application.Pagination, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return application.Pagination{}, false
	}
	return application.Pagination{Page: q.Page, Limit: q.Limit}, true
}
