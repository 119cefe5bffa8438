package imports

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/config"
	importsrepo "github.com/Ramsey-B/fern/internal/repositories/imports"
	"github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/importer"
)

// Register registers import routes
func Register(g *echo.Group) {
	g.POST("", UploadImport)
	g.GET("", ListImports)
	g.GET("/:id", GetImport)
	g.GET("/:id/rows", ListImportRows)
	g.POST("/reprocess", Reprocess)
}

// UploadImport accepts a workbook upload and runs the import pipeline
// synchronously, returning the per-row outcome
func UploadImport(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "multipart field 'file' is required")
	}

	ctx, cfg, err := ectoinject.GetContext[*config.Config](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}
	if cfg.ImportMaxUploadBytes > 0 && fileHeader.Size > cfg.ImportMaxUploadBytes {
		return httperror.NewHTTPErrorf(http.StatusRequestEntityTooLarge, "file exceeds %d bytes", cfg.ImportMaxUploadBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}

	ctx, svc, err := ectoinject.GetContext[*importer.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	var uploadedBy *string
	if userID := context.GetUserID(ctx); userID != "" {
		uploadedBy = &userID
	}

	result, err := svc.Run(ctx, fileHeader.Filename, data, uploadedBy)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ListImports lists imports, newest first
func ListImports(c echo.Context) error {
	ctx := c.Request().Context()
	page, pageSize := pagination(c)

	ctx, repo, err := ectoinject.GetContext[*importsrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	resp, err := repo.List(ctx, page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// GetImport gets one import with its counts
func GetImport(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*importsrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	imp, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, imp)
}

// ListImportRows lists the archived rows of an import, optionally filtered
// by status (pending, processed, failed, skipped)
func ListImportRows(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	page, pageSize := pagination(c)

	var status *string
	if s := c.QueryParam("status"); s != "" {
		status = &s
	}

	ctx, repo, err := ectoinject.GetContext[*importsrepo.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	resp, err := repo.ListRows(ctx, id, status, page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Reprocess replays distribution for every stored processed row
func Reprocess(c echo.Context) error {
	ctx := c.Request().Context()

	ctx, svc, err := ectoinject.GetContext[*importer.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := svc.Reprocess(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
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
