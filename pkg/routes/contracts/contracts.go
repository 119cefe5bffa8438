package contracts

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/contract"
	"github.com/Ramsey-B/fern/internal/repositories/payment"
	"github.com/Ramsey-B/fern/internal/repositories/shipment"
	"github.com/Ramsey-B/fern/internal/repositories/trucking"
)

// Register registers contract routes. A :number segment matches either the
// contract number or the PO number.
func Register(g *echo.Group) {
	g.GET("", ListContracts)
	g.GET("/:number", GetContract)
	g.GET("/:number/shipments", ListContractShipments)
	g.GET("/:number/trucking", ListContractTrucking)
	g.GET("/:number/payments", ListContractPayments)
}

// ListContracts lists contracts with an optional supplier filter
func ListContracts(c echo.Context) error {
	ctx := c.Request().Context()
	page, pageSize := pagination(c)

	var supplier *string
	if s := c.QueryParam("supplier"); s != "" {
		supplier = &s
	}

	ctx, repo, err := ectoinject.GetContext[*contract.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	resp, err := repo.List(ctx, supplier, page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// GetContract gets a contract by contract number or PO number
func GetContract(c echo.Context) error {
	ctx := c.Request().Context()
	number := c.Param("number")

	ctx, repo, err := ectoinject.GetContext[*contract.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	found, err := repo.GetByNumber(ctx, number)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, found)
}

// ListContractShipments lists the shipments linked to a contract
func ListContractShipments(c echo.Context) error {
	ctx := c.Request().Context()
	number := c.Param("number")

	ctx, contracts, err := ectoinject.GetContext[*contract.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	found, err := contracts.GetByNumber(ctx, number)
	if err != nil {
		return err
	}

	ctx, shipments, err := ectoinject.GetContext[*shipment.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := shipments.ListByContract(ctx, found.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// ListContractTrucking lists the trucking operations recorded for a contract
func ListContractTrucking(c echo.Context) error {
	ctx := c.Request().Context()
	number := c.Param("number")

	ctx, repo, err := ectoinject.GetContext[*trucking.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.ListByContractNumber(ctx, number)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

// ListContractPayments lists the payment lifecycle rows for a contract
func ListContractPayments(c echo.Context) error {
	ctx := c.Request().Context()
	number := c.Param("number")

	ctx, repo, err := ectoinject.GetContext[*payment.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	list, err := repo.ListByContractNumber(ctx, number)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

func pagination(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}
	return page, pageSize
}
