package handlers

import (
	"errors"
	"net/http"

	"useradmin/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Failed to authenticate token"
)

// verifyTokenMiddleware gates protected routes. A missing header is a 403 to
// keep the original wire contract; a bad, expired or revoked token is a 401,
// so the frontend can tell "never logged in" from "session no longer valid".
func (h *Handler) verifyTokenMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": msgNoToken,
		})
		return
	}

	userID, err := h.services.ParseToken(c.Request.Context(), header)
	if err != nil {
		code, msg := authErrorResponse(err)
		if h.log != nil {
			h.log.Infow("token_rejected", "err", err, "status", code)
		}
		c.AbortWithStatusJSON(code, gin.H{"message": msg})
		return
	}

	c.Set("userId", userID)
	c.Next()
}

// authErrorResponse separates bad tokens from registry-store failures. A DB
// hiccup during the cross-check must answer 500, not 401: the frontend drops
// both token stores on auth failures, which would log every user out.
func authErrorResponse(err error) (int, string) {
	if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenRevoked) {
		return http.StatusUnauthorized, msgInvalidToken
	}
	return http.StatusInternalServerError, msgDatabaseError
}
