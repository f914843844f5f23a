package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/domain"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/validation"
)

const MsgIDRequired = `Param "id" is required`

// --------- Path ---------

type IDParams struct {
	ID *int `json:"id" validate:"required,min=1"`
}

// pathID reads the validated id, falling back to the raw path parameter when
// no gate ran. It answers 400 itself when there is no usable id.
func pathID(c *gin.Context) (uint, bool) {
	if p := validation.ParamsFrom[IDParams](c); p != nil && p.ID != nil {
		return uint(*p.ID), true
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.Write(c, http.StatusBadRequest, MsgIDRequired)
		return 0, false
	}
	return uint(id), true
}

// --------- Listing ---------

type listParams struct {
	Page   *int   `json:"page" validate:"omitempty,min=1"`
	Limit  *int   `json:"limit" validate:"omitempty,min=1"`
	Filter string `json:"filter" validate:"omitempty,max=30"`
	Order  string `json:"order" validate:"omitempty,oneof=asc desc"`
	ID     *int   `json:"id" validate:"omitempty,min=1"`
}

func (p listParams) query(orderBy string) domain.ListQuery {
	q := domain.ListQuery{
		Filter:  p.Filter,
		OrderBy: orderBy,
		Order:   p.Order,
	}
	if p.Page != nil {
		q.Page = *p.Page
	}
	if p.Limit != nil {
		q.Limit = *p.Limit
	}
	if p.ID != nil {
		q.ID = uint(*p.ID)
	}
	return q
}

type CityListParams struct {
	listParams
	OrderBy string `json:"orderBy" validate:"omitempty,oneof=id name stateId"`
}

type ClientListParams struct {
	listParams
	OrderBy string `json:"orderBy" validate:"omitempty,oneof=id name email cityId"`
}

type UserListParams struct {
	listParams
	OrderBy string `json:"orderBy" validate:"omitempty,oneof=id name email"`
}

// --------- Bodies ---------

type CityRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=60"`
	StateID *int   `json:"stateId" validate:"required,min=1"`
}

type ClientRequest struct {
	Name   string `json:"name" validate:"required,min=3,max=150"`
	Email  string `json:"email" validate:"required,email,max=150"`
	CityID *int   `json:"cityId" validate:"required,min=1"`
}

type UserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8,password_bytes,strong_password"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
