package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/adilzhm/textbook-service/internal/errs"
	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/adilzhm/textbook-service/pkg/kafka"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (h *Handler) RequestBook(c echo.Context) error {
	var req model.CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	created, err := h.requestSvc.CreateRequest(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		case errors.Is(err, errs.ErrUnavailable):
			return echo.NewHTTPError(http.StatusBadRequest, "Book not available")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.enqueueRequestEvent(created.RequestID, created.BookID, created.StudentUsername, created.Status)

	return c.JSON(http.StatusOK, echo.Map{"message": "Book request submitted successfully"})
}

func (h *Handler) GetMyRequests(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is empty")
	}

	items, err := h.requestSvc.ListByStudent(c.Request().Context(), username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteMyRequests(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is empty")
	}

	if err := h.requestSvc.DeleteByStudent(c.Request().Context(), username); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Requests for student '%s' deleted successfully", username)})
}

func (h *Handler) GetPendingRequests(c echo.Context) error {
	items, err := h.requestSvc.ListPending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeletePendingRequests(c echo.Context) error {
	if err := h.requestSvc.DeleteAllPending(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Pending requests deleted successfully"})
}

func (h *Handler) ProcessRequest(c echo.Context) error {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	status := model.Status(c.QueryParam("status"))

	processed, err := h.requestSvc.ProcessRequest(c.Request().Context(), requestID, status)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidArgument):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Request not found")
		case errors.Is(err, errs.ErrUnavailable):
			return echo.NewHTTPError(http.StatusBadRequest, "Book no longer available")
		case errors.Is(err, errs.ErrAlreadyProcessed):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.enqueueRequestEvent(processed.RequestID, processed.BookID, processed.StudentUsername, processed.Status)

	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Request %s successfully", status)})
}

func (h *Handler) enqueueRequestEvent(requestID int, bookID, username string, status model.Status) {
	event := kafka.RequestEvent{
		EventID:         uuid.NewString(),
		RequestID:       requestID,
		BookID:          bookID,
		StudentUsername: username,
		Status:          string(status),
		OccurredAt:      time.Now().UTC(),
	}
	if err := h.enqueuer.Enqueue(kafka.RequestEventsTopic, event); err != nil {
		h.log.Warn("enqueue request event", zap.Error(err))
	}
}
