package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clients-api/internal/httperr"
)

type testBody struct {
	Name     string `json:"name" validate:"required,min=3,max=10"`
	Age      *int   `json:"age" validate:"required,min=1"`
	Password string `json:"password" validate:"omitempty,min=8,password_bytes,strong_password"`
}

type paging struct {
	Page  *int   `json:"page" validate:"omitempty,min=1"`
	Order string `json:"order" validate:"omitempty,oneof=asc desc"`
}

type testQuery struct {
	paging
	OrderBy string `json:"orderBy" validate:"omitempty,oneof=id name"`
}

type testParams struct {
	ID *int `json:"id" validate:"required,min=1"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()

	v, err := New()
	require.NoError(t, err)

	r := gin.New()
	r.POST("/things/:id",
		v.Gate(Body[testBody](), Query[testQuery](), Params[testParams]()),
		func(c *gin.Context) {
			body := BodyFrom[testBody](c)
			query := QueryFrom[testQuery](c)
			params := ParamsFrom[testParams](c)
			c.JSON(http.StatusOK, gin.H{
				"name":    body.Name,
				"age":     *body.Age,
				"orderBy": query.OrderBy,
				"id":      *params.ID,
			})
		})
	return r
}

func do(t *testing.T, r http.Handler, target, body string) (*httptest.ResponseRecorder, httperr.Body) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out httperr.Body
	if w.Code == http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestGatePassesValidInput(t *testing.T) {
	w, _ := do(t, newRouter(t), "/things/4?orderBy=name&page=2", `{"name":"Recife","age":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Recife","age":3,"orderBy":"name","id":4}`, w.Body.String())
}

func TestGateCollectsEverySource(t *testing.T) {
	w, out := do(t, newRouter(t), "/things/0?orderBy=email&order=up", `{"name":"ab"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"name must be at least 3 characters in length",
		"age is a required field",
		"order must be one of [asc desc]",
		"orderBy must be one of [id name]",
		"id must be 1 or greater",
	}, out.Errors)
}

func TestGateReportsTypeErrorsOnce(t *testing.T) {
	w, out := do(t, newRouter(t), "/things/abc?page=1.5", `{"name":12,"age":"x"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"name must be a string",
		"age must be an integer",
		"page must be an integer",
		"id must be an integer",
	}, out.Errors)
}

func TestGateRejectsNonObjectBody(t *testing.T) {
	w, out := do(t, newRouter(t), "/things/1", `[1,2]`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"body must be a valid JSON object"}, out.Errors)
}

func TestGateRejectsTrailingData(t *testing.T) {
	for _, body := range []string{
		`{"name":"Recife","age":1} garbage`,
		`{"name":"Recife","age":1}{"name":"Natal"}`,
	} {
		w, out := do(t, newRouter(t), "/things/1", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, []string{"body must be a valid JSON object"}, out.Errors, body)
	}

	w, _ := do(t, newRouter(t), "/things/1", "{\"name\":\"Recife\",\"age\":1}\n")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateEmptyBodyIsAnEmptyObject(t *testing.T) {
	w, out := do(t, newRouter(t), "/things/1", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"name is a required field", "age is a required field"}, out.Errors)
}

func TestGateStrongPassword(t *testing.T) {
	w, out := do(t, newRouter(t), "/things/1", `{"name":"Recife","age":1,"password":"weakpassword"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{
		"password must include at least one number, one upper case letter, one lower case letter and one special character",
	}, out.Errors)

	w, out = do(t, newRouter(t), "/things/1", `{"name":"Recife","age":1,"password":"Ab1!"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"password must be at least 8 characters in length"}, out.Errors)

	w, out = do(t, newRouter(t), "/things/1", `{"name":"Recife","age":1,"password":"Aa1!`+strings.Repeat("é", 60)+`"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"password must be at most 72 bytes long"}, out.Errors)
}

func TestGateStopsTheChain(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	reached := false
	r := gin.New()
	r.POST("/x", v.Gate(Body[testBody]()), func(c *gin.Context) { reached = true })

	w, _ := do(t, r, "/x", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)
}
