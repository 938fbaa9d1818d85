package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
	"github.com/oksasatya/go-ddd-content-platform/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), application.LoginCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.SetRefresh(c, res.Tokens.RefreshToken, res.Tokens.RefreshTokenExpiry)
	}
	response.Write(c, response.Success(c, http.StatusOK, res, "login successful"))
}

// Refresh POST /api/auth/refresh. The token is read from the JSON body,
// falling back to the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
	}
	token := req.RefreshToken
	if token == "" && h.Cookies != nil {
		token = h.Cookies.Refresh(c)
	}
	if token == "" {
		writeError(c, h.Logger, &errs.InvalidTokenError{})
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), application.RefreshCommand{RefreshToken: token})
	if err != nil {
		if h.Cookies != nil {
			h.Cookies.Clear(c)
		}
		writeError(c, h.Logger, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.SetRefresh(c, pair.RefreshToken, pair.RefreshTokenExpiry)
	}
	response.Write(c, response.Success(c, http.StatusOK, pair, "token refreshed"))
}

// Logout POST /api/auth/logout clears the refresh cookie. Tokens are not
// revoked; they expire on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.Cookies != nil {
		h.Cookies.Clear(c)
	}
	response.Write(c, response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out"))
}
