package shipments

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/shipment"
)

// Register registers shipment routes
func Register(g *echo.Group) {
	g.GET("/:shipmentID", GetShipment)
	g.GET("/:shipmentID/legs", ListPortLegs)
	g.GET("/:shipmentID/surveys", ListQualitySurveys)
}

// GetShipment gets a shipment by its business key
func GetShipment(c echo.Context) error {
	ctx := c.Request().Context()
	shipmentID := c.Param("shipmentID")

	ctx, repo, err := ectoinject.GetContext[*shipment.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	found, err := repo.GetByShipmentID(ctx, shipmentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, found)
}

// ListPortLegs lists a shipment's vessel loading ports in leg order, with
// the discharge port last
func ListPortLegs(c echo.Context) error {
	ctx := c.Request().Context()
	shipmentID := c.Param("shipmentID")

	ctx, repo, err := ectoinject.GetContext[*shipment.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	legs, err := repo.ListPortLegs(ctx, shipmentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, legs)
}

// ListQualitySurveys lists a shipment's per-location quality surveys
func ListQualitySurveys(c echo.Context) error {
	ctx := c.Request().Context()
	shipmentID := c.Param("shipmentID")

	ctx, repo, err := ectoinject.GetContext[*shipment.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	surveys, err := repo.ListQualitySurveys(ctx, shipmentID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, surveys)
}
