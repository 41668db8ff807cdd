package handlers

import (
	"errors"
	"net/http"
	"strings"

	"pumpjack_simulator/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errRegisterOperator   = "could not register operator"
	errInvalidCredentials = "invalid credentials"
	errIssueToken         = "could not issue token"
)

// Single, shared credentials payload for both sign-up and sign-in.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest binds the body into dst or writes a 400 and returns false.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Register operator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   authCredentials  true  "Credentials"
// @Success      201   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if !h.bindJSONOrBadRequest(c, &input) {
		return
	}
	username := strings.TrimSpace(input.Username)

	id, err := h.services.SignUp(c.Request.Context(), username, input.Password)
	switch {
	case err == nil:
		h.log.Infow("operator_registered", "operator_id", id, "username", username)
		c.JSON(http.StatusCreated, gin.H{"id": id})
	case errors.Is(err, service.ErrEmptyUsername), errors.Is(err, service.ErrEmptyPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOperatorExists):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrOperatorExists.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errRegisterOperator, "auth_sign_up_failed", err, "username", username)
	}
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "token, token_type"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if !h.bindJSONOrBadRequest(c, &input) {
		return
	}
	username := strings.TrimSpace(input.Username)

	token, err := h.services.GenerateToken(c.Request.Context(), username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrOperatorNotFound) || errors.Is(err, service.ErrInvalidPassword) {
			h.log.Infow("auth_sign_in_rejected", "username", username)
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errIssueToken, "auth_sign_in_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "token_type": bearerScheme})
}
