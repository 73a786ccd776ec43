package handlers

import (
	"net/http"

	"github.com/adi-1080/notesapp/internal/auth"
	dom "github.com/adi-1080/notesapp/internal/domain"
	"github.com/adi-1080/notesapp/internal/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct{}

// NewUserHandler returns a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName}
}
