package record

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/prontuario/api/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/prontuarios", h.CreateRecord)
	g.GET("/prontuarios", h.ListRecords)
	g.GET("/prontuarios/:id", h.GetRecord)
	g.PUT("/prontuarios/:id", h.UpdateRecord)
	g.DELETE("/prontuarios/:id", h.DeleteRecord)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := h.svc.CreateRecord(c.Request().Context(), &in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) ListRecords(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListRecords(c.Request().Context()))
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	r, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := h.svc.UpdateRecord(c.Request().Context(), id, &in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, r)
}

// DeleteRecord answers with the removed record wrapped in a one-element
// array.
func (h *Handler) DeleteRecord(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	r, err := h.svc.DeleteRecord(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, []MedicalRecord{*r})
}

// parseID reads :id as a base-10 integer. Anything else matches no record.
func parseID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func httpError(err error) error {
	return echo.NewHTTPError(apperr.Status(err), apperr.Message(err)).SetInternal(err)
}
