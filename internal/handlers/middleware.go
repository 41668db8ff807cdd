package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"
	operatorCtxKey      = "operatorId"

	errTokenRejected = "invalid or expired token"
)

var (
	errMissingAuthHeader = errors.New("missing Authorization header")
	errBadAuthHeader     = errors.New("invalid Authorization header format")
)

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || scheme != bearerScheme || token == "" {
		return "", errBadAuthHeader
	}
	return token, nil
}

// operatorIdMiddleware rejects requests without a valid operator token and
// stores the operator id in the context.
func (h *Handler) operatorIdMiddleware(c *gin.Context) {
	token, err := bearerToken(c.GetHeader(authorizationHeader))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id, err := h.services.ParseToken(token)
	if err != nil {
		h.log.Debugw("auth_token_rejected", "path", c.FullPath(), "err", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenRejected})
		return
	}

	c.Set(operatorCtxKey, id)
	c.Next()
}

// operatorID returns the id set by operatorIdMiddleware, 0 outside protected routes.
func operatorID(c *gin.Context) int {
	return c.GetInt(operatorCtxKey)
}
