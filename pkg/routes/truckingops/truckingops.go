package truckingops

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/trucking"
)

// Register registers trucking operation routes
func Register(g *echo.Group) {
	g.GET("", ListTruckingOperations)
	g.GET("/:id", GetTruckingOperation)
}

// ListTruckingOperations lists trucking operations for a contract number
func ListTruckingOperations(c echo.Context) error {
	ctx := c.Request().Context()

	contractNumber := c.QueryParam("contract_number")
	if contractNumber == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "contract_number query parameter is required")
	}

	ctx, repo, err := ectoinject.GetContext[*trucking.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.ListByContractNumber(ctx, contractNumber)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// GetTruckingOperation gets one trucking operation by ID
func GetTruckingOperation(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*trucking.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	op, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, op)
}
