package handler

import (
	"fmt"
	"net/http"

	"github.com/adilzhm/textbook-service/internal/errs"
	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func (h *Handler) GetCategories(c echo.Context) error {
	names, err := h.catalogSvc.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, names)
}

func (h *Handler) AddCategory(c echo.Context) error {
	var req model.Category
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.CreateCategory(c.Request().Context(), req.Name); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return echo.NewHTTPError(http.StatusBadRequest, "Category already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Category '%s' added successfully", req.Name)})
}

func (h *Handler) RemoveCategory(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is empty")
	}

	if err := h.catalogSvc.DeleteCategory(c.Request().Context(), name); err != nil {
		switch {
		case errors.Is(err, errs.ErrInUse):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot delete category that is assigned to books")
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Category '%s' removed successfully", name)})
}
