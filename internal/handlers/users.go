package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"useradmin/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgUserAdded    = "User added successfully"
	msgUserUpdated  = "User updated successfully"
	msgUserDeleted  = "User deleted successfully"
	msgUserNotFound = "User not found"
	msgInvalidID    = "Invalid user id"
)

// parseIDParam reads the :id path segment; writes a 400 and returns false on garbage.
func (h *Handler) parseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidID})
		return 0, false
	}
	return id, true
}

// storeError logs and answers a generic 500. Single best-effort attempt, no retry.
func (h *Handler) storeError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": msgDatabaseError})
}

// @Summary      List users
// @Description  Returns the whole table; page/pageSize query params are accepted but pagination happens client-side.
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
// @Security     BearerAuth
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "users_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (h *Handler) getUser(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	u, err := h.services.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
			return
		}
		h.storeError(c, "users_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Add user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  service.CreateUserInput  true  "New account"
// @Success      200  {object}  map[string]interface{}  "message, id"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users [post]
// @Security     BearerAuth
func (h *Handler) createUser(c *gin.Context) {
	var input service.CreateUserInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	id, err := h.services.Users.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.storeError(c, "users_create_failed", err, "username", input.Username)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUserAdded, "id": id})
}

// @Summary      Update user
// @Description  Supplied fields overwrite stored ones; omitted fields are kept. Last write wins.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "User ID"
// @Param        body  body  service.UpdateUserInput  true  "Fields to set"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var input service.UpdateUserInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if err := h.services.Users.Update(c.Request.Context(), id, input); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			h.storeError(c, "users_update_failed", err, "id", id)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUserUpdated})
}

// @Summary      Delete user
// @Description  Unconditional delete; no existence check, no token-registry cascade.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Users.Delete(c.Request.Context(), id); err != nil {
		h.storeError(c, "users_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUserDeleted})
}

// @Summary      Active session count
// @Description  Raw registry row count: grows on login, shrinks only on explicit logout.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      500  {object}  map[string]string
// @Router       /active-tokens/count [get]
// @Security     BearerAuth
func (h *Handler) activeTokenCount(c *gin.Context) {
	n, err := h.services.ActiveCount(c.Request.Context())
	if err != nil {
		h.storeError(c, "active_count_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
