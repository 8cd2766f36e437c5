package handlers

import (
	"errors"
	"net/http"

	"useradmin/internal/service"

	"github.com/gin-gonic/gin"
)

// Response messages kept to the wire contract the frontend matches on.
const (
	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid credentials"
	msgDatabaseError      = "Database error"
	msgLogoutSuccessful   = "Logout successful"
	msgLogoutFailed       = "Logout failed"
)

type loginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled, true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return false
	}
	return true
}

// @Summary      Log in
// @Description  Issues a bearer token (1h TTL, 7d with rememberMe) and records it in the active-token registry.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "message, token, userId"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, userID, err := h.services.Login(c.Request.Context(), input.Username, input.Password, input.RememberMe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("login_failed", "username", input.Username)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCredentials})
			return
		}
		if h.log != nil {
			h.log.Errorw("login_store_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgDatabaseError})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": msgLoginSuccessful,
		"token":   token,
		"userId":  userID,
	})
}

// @Summary      Log out
// @Description  Removes the token from the active-token registry. Succeeds without a token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /logout [post]
func (h *Handler) logout(c *gin.Context) {
	token := c.GetHeader("Authorization")

	if err := h.services.Logout(c.Request.Context(), token); err != nil {
		if h.log != nil {
			h.log.Errorw("logout_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgLogoutFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgLogoutSuccessful})
}
