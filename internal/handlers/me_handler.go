package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/domain/user"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/middleware"
)

// MeHandler answers with the user the bearer token was issued to.
type MeHandler struct {
	users user.Repository
}

func NewMeHandler(users user.Repository) *MeHandler {
	return &MeHandler{users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Write(c, http.StatusUnauthorized, middleware.MsgMissingToken)
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"expiresIn": identity.ExpiresIn,
	})
}
