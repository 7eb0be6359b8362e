package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"field-service-api/auth"
	"field-service-api/middleware"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (cr credentials) complete() bool {
	return cr.Email != "" && cr.Password != ""
}

// resolveCredentials tries the three credential channels in fixed precedence:
// JSON body, form-encoded body, query parameters. The first channel that
// yields both fields wins; fields are never merged across channels.
func resolveCredentials(c *gin.Context) (credentials, bool) {
	body, _ := io.ReadAll(c.Request.Body)

	var cr credentials
	if json.Unmarshal(body, &cr) == nil && cr.complete() {
		return cr, true
	}

	if form, err := url.ParseQuery(string(body)); err == nil {
		cr = credentials{Email: form.Get("email"), Password: form.Get("password")}
		if cr.complete() {
			return cr, true
		}
	}

	cr = credentials{Email: c.Query("email"), Password: c.Query("password")}
	if cr.complete() {
		return cr, true
	}

	return credentials{}, false
}

// Login authenticates a user and returns a signed access token. Unknown
// email and wrong password produce the same 401.
func (h *Handler) Login(c *gin.Context) {
	cr, ok := resolveCredentials(c)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email and password required"})
		return
	}

	user, err := h.users.GetByEmail(cr.Email)
	if err != nil || !auth.CheckPassword(cr.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Role, h.cfg.TokenTTL, h.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated caller's identity.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
