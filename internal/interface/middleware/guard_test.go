package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type stubAuthorizer struct {
	principal application.Principal
	err       error
	gotHeader string
	gotRole   entity.Role
}

func (s *stubAuthorizer) Authorize(_ context.Context, header string, role entity.Role) (application.Principal, error) {
	s.gotHeader, s.gotRole = header, role
	return s.principal, s.err
}

type errorEnvelope struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func serveGuarded(t *testing.T, a Authorizer, role entity.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	r := gin.New()
	r.GET("/x", Guard(a, role), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || c.GetString(CtxUserIDKey) != p.ID.String() {
			t.Error("principal missing from context")
		}
		reached = true
		c.Status(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer t")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, reached
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

func TestGuardPassesPrincipal(t *testing.T) {
	a := &stubAuthorizer{principal: application.Principal{ID: "m1", Email: "a@b.io", Role: entity.RoleMember}}
	w, reached := serveGuarded(t, a, entity.RoleMember)
	if !reached || w.Code != http.StatusNoContent {
		t.Fatalf("code = %d, reached = %v", w.Code, reached)
	}
	if a.gotHeader != "Bearer t" || a.gotRole != entity.RoleMember {
		t.Fatalf("authorizer got %q, %q", a.gotHeader, a.gotRole)
	}
}

func TestGuardRejections(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing token", &application.RejectError{Reason: application.RejectMissingToken}, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"inactive", &application.RejectError{Reason: application.RejectInactive}, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"role mismatch", &application.RejectError{Reason: application.RejectRoleMismatch}, http.StatusForbidden, "FORBIDDEN"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, reached := serveGuarded(t, &stubAuthorizer{err: tc.err}, entity.RoleAdmin)
			if reached {
				t.Fatal("handler ran for a rejected request")
			}
			if w.Code != tc.status {
				t.Fatalf("code = %d, want %d", w.Code, tc.status)
			}
			env := decodeError(t, w)
			if env.Success || env.Error.Code != tc.code {
				t.Fatalf("envelope = %+v", env)
			}
			hasChallenge := w.Header().Get("WWW-Authenticate") != ""
			if hasChallenge != (tc.status == http.StatusUnauthorized) {
				t.Fatalf("WWW-Authenticate present = %v for %d", hasChallenge, tc.status)
			}
		})
	}
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	jwt, err := helpers.NewJWTManager("access-secret", "refresh-secret", time.Nanosecond, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := jwt.GenerateAccessToken("m1", "jane@example.com", string(entity.RoleMember))
	if err != nil {
		t.Fatal(err)
	}
	guard := application.NewGuard(jwt, memory.NewMemberRepository(), nil)

	r := gin.New()
	r.GET("/x", Guard(guard, entity.RoleMember), func(c *gin.Context) {
		t.Error("handler ran for an expired token")
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("missing WWW-Authenticate challenge")
	}
	if env := decodeError(t, w); env.Error.Code != "UNAUTHENTICATED" {
		t.Fatalf("envelope = %+v", env)
	}
}
