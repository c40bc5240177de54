package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Root handles GET /.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Hello, World!"})
}

// GetItem handles GET /items/:item_id and echoes the id and optional q.
func GetItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id must be an integer"})
	}
	var q *string
	if c.QueryParams().Has("q") {
		v := c.QueryParam("q")
		q = &v
	}
	return c.JSON(http.StatusOK, echo.Map{"item_id": id, "q": q})
}
