package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/domain/city"
	"github.com/BruksfildServices01/clients-api/internal/dto"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/httpresp"
	"github.com/BruksfildServices01/clients-api/internal/validation"
)

type CityHandler struct {
	repo city.Repository
}

func NewCityHandler(repo city.Repository) *CityHandler {
	return &CityHandler{repo: repo}
}

func (h *CityHandler) Create(c *gin.Context) {
	body := validation.BodyFrom[CityRequest](c)

	id, err := h.repo.Create(c.Request.Context(), city.Input{
		Name:    body.Name,
		StateID: *body.StateID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.CreatedResponse{ID: id})
}

func (h *CityHandler) List(c *gin.Context) {
	var params CityListParams
	if p := validation.QueryFrom[CityListParams](c); p != nil {
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

func (h *CityHandler) GetByID(c *gin.Context) {
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

func (h *CityHandler) UpdateByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	body := validation.BodyFrom[CityRequest](c)

	if _, err := h.repo.GetByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.repo.UpdateByID(c.Request.Context(), id, city.Input{
		Name:    body.Name,
		StateID: *body.StateID,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *CityHandler) DeleteByID(c *gin.Context) {
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
