package routes

import (
	"medicore/cmd/internal/utils/apierror"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func paramID(c echo.Context) (int, apierror.ErrorResponse) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apierror.NewSimple(http.StatusBadRequest, "ID is not a number")
	}
	return id, nil
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(c echo.Context, name string) (int, apierror.ErrorResponse) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "integer")
	}
	return n, nil
}
