package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamtasks/task-system/internal/core/ports"
)

// TransferHandler handles CSV export and import.
type TransferHandler struct {
	service ports.TransferService
}

func NewTransferHandler(service ports.TransferService) *TransferHandler {
	return &TransferHandler{service: service}
}

// Export handles GET /v1/export — streams the team's tasks as CSV.
//
// @Summary      Export the team's tasks as CSV
// @Tags         transfer
// @Produce      text/csv
// @Security     SessionAuth
// @Success      200  {string}  string  "CSV file"
// @Failure      403  {object}  errorResponse
// @Router       /v1/export [get]
func (h *TransferHandler) Export(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	rows, err := h.service.Export(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tasks.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return writeCSV(c.Response(), rows)
}

type importResponse struct {
	Results []ports.ImportRowResult `json:"results"`
}

// Import handles POST /v1/import — accepts a CSV body or multipart file
// and reports a per-row result list. Row-level failures never abort the
// batch.
//
// @Summary      Import tasks from CSV
// @Tags         transfer
// @Accept       text/csv
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  importResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/import [post]
func (h *TransferHandler) Import(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	body := c.Request().Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
		}
		defer f.Close()
		body = f
	}

	rows, err := readCSV(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	results, err := h.service.Import(c.Request().Context(), actor, rows)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, importResponse{Results: results})
}
