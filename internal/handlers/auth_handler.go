package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/domain/user"
	"github.com/BruksfildServices01/clients-api/internal/dto"
	"github.com/BruksfildServices01/clients-api/internal/httperr"
	"github.com/BruksfildServices01/clients-api/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/clients-api/internal/usecase/auth"
	"github.com/BruksfildServices01/clients-api/internal/validation"
)

type AuthHandler struct {
	users  user.Repository
	signIn *ucAuth.SignIn
}

func NewAuthHandler(users user.Repository, signIn *ucAuth.SignIn) *AuthHandler {
	return &AuthHandler{users: users, signIn: signIn}
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	body := validation.BodyFrom[UserRequest](c)

	id, err := h.users.Create(c.Request.Context(), user.Input{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.CreatedResponse{ID: id})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	body := validation.BodyFrom[SignInRequest](c)

	out, err := h.signIn.Execute(c.Request.Context(), ucAuth.SignInInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.SignInResponse{
		AccessToken: out.AccessToken,
		ExpiresIn:   out.ExpiresIn,
	})
}
