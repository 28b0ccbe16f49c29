package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusLoggedOut = "logged_out"

	defaultNextURL = "/home/"

	errInvalidCredentials = "invalid credentials"
)

// signInRequest carries login credentials plus an optional destination
// the client wants to land on after signing in.
type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Next     string `json:"next,omitempty"`
}

type signUpRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *Handler) loginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": []string{"username", "password"},
	})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signInRequest  true  "Credentials"
// @Success      200  {object}  map[string]string  "token, next"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       / [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		// One generic message for every failure mode, so callers can't
		// tell a bad username from a bad password.
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "username", input.Username)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		return
	}

	next := input.Next
	if next == "" {
		next = c.Query("next")
	}
	if next == "" {
		next = defaultNextURL
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "next": next})
}

// @Summary      Registration page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /register/ [get]
func (h *Handler) registerPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"form": []string{"username", "password", "password_confirm"},
	})
}

// @Summary      Register
// @Description  Creates the account and signs the new user in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signUpRequest  true  "Registration fields"
// @Success      200  {object}  map[string]interface{}  "id, token"
// @Failure      400  {object}  map[string]interface{}
// @Router       /register/ [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, token, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password, input.PasswordConfirm)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "token": token})
}

// @Summary      Logout
// @Description  Ends the session named by the bearer token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /logout/ [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusLoggedOut})
}

// @Summary      Home page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /home/ [get]
// @Security     BearerAuth
func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"user_id": c.GetInt(userIDKey),
	})
}
