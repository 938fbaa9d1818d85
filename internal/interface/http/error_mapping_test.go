package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
)

func init() { gin.SetMode(gin.TestMode) }

func TestEveryKindHasAStatus(t *testing.T) {
	for _, k := range errs.AllKinds() {
		if statusByKind[k] == 0 {
			t.Errorf("kind %s has no status", k)
		}
	}
	MustCoverAllKinds()
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.Validation(errs.FieldTitle, "", "bad"), http.StatusBadRequest},
		{errs.NotFound(errs.ResourcePost, "p"), http.StatusNotFound},
		{errs.AlreadyExists(errs.ResourceMember, "a@b.io"), http.StatusConflict},
		{errs.Unauthorized(errs.ActionUpdate, errs.ResourcePost, "p", "m"), http.StatusForbidden},
		{&errs.AccountDeactivatedError{Email: "a@b.io"}, http.StatusForbidden},
		{&errs.InvalidCredentialsError{}, http.StatusUnauthorized},
		{&errs.PostAlreadyPublishedError{PostID: "p"}, http.StatusConflict},
		{&errs.DeletedCommentUpdateError{CommentID: "c"}, http.StatusConflict},
		{&errs.CommentOnUnpublishedPostError{PostID: "p"}, http.StatusForbidden},
		{&errs.InvalidTokenError{}, http.StatusUnauthorized},
		{errors.New("untagged"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Errorf("StatusFor(%T) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

type envelope struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writeError(c, nil, err)
	var env envelope
	if e := json.Unmarshal(w.Body.Bytes(), &env); e != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), e)
	}
	return w, env
}

func TestWriteErrorCarriesKindAndDetails(t *testing.T) {
	w, env := renderError(t, errs.NotFound(errs.ResourcePost, "p1"))
	if w.Code != http.StatusNotFound || env.Status != http.StatusNotFound {
		t.Fatalf("code = %d, status = %d", w.Code, env.Status)
	}
	if env.Error.Code != string(errs.KindNotFound) || env.Error.Details["resource_id"] != "p1" {
		t.Fatalf("error = %+v", env.Error)
	}
	if env.Message != "POST with id 'p1' not found" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestWriteErrorHidesInternalCause(t *testing.T) {
	w, env := renderError(t, errs.Internal("save post", errors.New("pq: connection refused")))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection refused") || env.Error.Details != nil {
		t.Fatalf("internal cause leaked: %s", w.Body.String())
	}
	if env.Message != "internal server error" {
		t.Fatalf("message = %q", env.Message)
	}
}
