package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Records        []T   `json:"records"`
	TotalOfRecords int64 `json:"totalOfRecords"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// List renders one page together with the total across all pages.
func List[T any](c *gin.Context, records []T, total int64) {
	if records == nil {
		records = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Records:        records,
		TotalOfRecords: total,
	})
}
