package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/domain/client"
	"github.com/BruksfildServices01/clients-api/internal/dto"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/httpresp"
	"github.com/BruksfildServices01/clients-api/internal/validation"
)

type ClientHandler struct {
	repo client.Repository
}

func NewClientHandler(repo client.Repository) *ClientHandler {
	return &ClientHandler{repo: repo}
}

func (r ClientRequest) input() client.Input {
	return client.Input{
		Name:   r.Name,
		Email:  r.Email,
		CityID: uint(*r.CityID),
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	body := validation.BodyFrom[ClientRequest](c)

	id, err := h.repo.Create(c.Request.Context(), body.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.CreatedResponse{ID: id})
}

func (h *ClientHandler) List(c *gin.Context) {
	var params ClientListParams
	if p := validation.QueryFrom[ClientListParams](c); p != nil {
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

func (h *ClientHandler) GetByID(c *gin.Context) {
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

func (h *ClientHandler) UpdateByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	body := validation.BodyFrom[ClientRequest](c)

	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.UpdateByID(c.Request.Context(), id, body.input()); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *ClientHandler) DeleteByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.DeleteByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
