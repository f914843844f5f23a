package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/domain/user"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/httpresp"
	"github.com/BruksfildServices01/clients-api/internal/validation"
)

// UserHandler serves the authenticated user endpoints. Users are created
// through sign-up.
type UserHandler struct {
	repo user.Repository
}

func NewUserHandler(repo user.Repository) *UserHandler {
	return &UserHandler{repo: repo}
}

func (h *UserHandler) List(c *gin.Context) {
	var params UserListParams
	if p := validation.QueryFrom[UserListParams](c); p != nil {
		params = *p
	}
	q := params.query(params.OrderBy)

	records, err := h.repo.GetAll(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	total, err := h.repo.Count(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, records, total)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	record, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, record)
}

func (h *UserHandler) UpdateByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	body := validation.BodyFrom[UserRequest](c)

	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.UpdateByID(c.Request.Context(), id, user.Input{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
