package handler

import (
	"net/http"

	"github.com/adilzhm/textbook-service/internal/errs"
	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func (h *Handler) GetBooks(c echo.Context) error {
	books, err := h.catalogSvc.ListBooks(c.Request().Context(), c.QueryParam("category"), c.QueryParam("search"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, books)
}

// GetBooksByCategory 404s on an empty result, unlike GetBooks with a
// category filter, which returns an empty list. Both behaviors are kept
// deliberately: the UI distinguishes "unknown category page" from an
// empty catalog listing.
func (h *Handler) GetBooksByCategory(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is empty")
	}

	books, err := h.catalogSvc.ListBooks(c.Request().Context(), name, "")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(books) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No books found for the specified category")
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) AddBook(c echo.Context) error {
	var req model.Book
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.CreateBook(c.Request().Context(), req); err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidReference):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category")
		case errors.Is(err, errs.ErrConflict):
			return echo.NewHTTPError(http.StatusBadRequest, "Book ID already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book added successfully"})
}

func (h *Handler) UpdateQuantity(c echo.Context) error {
	var req model.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.catalogSvc.UpdateQuantity(c.Request().Context(), req.BookID, req.Quantity); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book quantity updated successfully"})
}

func (h *Handler) RemoveBook(c echo.Context) error {
	bookID := c.Param("bookID")
	if bookID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bookID is empty")
	}

	if err := h.catalogSvc.DeleteBook(c.Request().Context(), bookID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book removed successfully"})
}
