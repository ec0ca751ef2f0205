package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/voltride/rental-service/internal/dto"
	"github.com/voltride/rental-service/internal/models"
	"github.com/voltride/rental-service/internal/service"
)

type PenaltyHandler struct {
	svc service.PenaltyService
}

func NewPenaltyHandler(svc service.PenaltyService) *PenaltyHandler {
	return &PenaltyHandler{svc: svc}
}

func (h *PenaltyHandler) RegisterRoutes(e *echo.Echo) {
	penalties := e.Group("/api/v1/penalties")
	penalties.GET("/statistics", h.Statistics)
	penalties.POST("", h.CreatePenalty)
	penalties.PATCH("/:id", h.UpdatePenalty)
	penalties.DELETE("/:id", h.DeletePenalty)
	penalties.POST("/:id/pay", h.MarkPaid)

	e.GET("/api/v1/bookings/:id/penalties", h.ListByBooking)
	e.GET("/api/v1/users/:id/penalties", h.ListByUser)
}

func penaltyID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid penalty id")
	}
	return uint(id), nil
}

func (h *PenaltyHandler) CreatePenalty(c echo.Context) error {
	var req dto.CreatePenaltyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id is required")
	}

	penalty, err := h.svc.CreatePenalty(c.Request().Context(), service.CreatePenaltyInput{
		BookingID:  req.BookingID,
		CustomerID: req.CustomerID,
		Type:       req.Type,
		Amount:     req.Amount,
		Reason:     req.Reason,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPenaltyResponse(penalty))
}

func (h *PenaltyHandler) UpdatePenalty(c echo.Context) error {
	id, err := penaltyID(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePenaltyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	penalty, err := h.svc.UpdatePenalty(c.Request().Context(), id, service.UpdatePenaltyInput{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		PaidAmount:    req.PaidAmount,
		PaidAt:        req.PaidAt,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPenaltyResponse(penalty))
}

func (h *PenaltyHandler) DeletePenalty(c echo.Context) error {
	id, err := penaltyID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeletePenalty(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PenaltyHandler) MarkPaid(c echo.Context) error {
	id, err := penaltyID(c)
	if err != nil {
		return err
	}

	var req dto.MarkPaidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	penalty, err := h.svc.MarkPaid(c.Request().Context(), id, req.PaidAmount, req.PaymentMethod)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPenaltyResponse(penalty))
}

func (h *PenaltyHandler) ListByBooking(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	penalties, err := h.svc.ListByBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toPenaltyList(penalties))
}

func (h *PenaltyHandler) ListByUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	penalties, err := h.svc.ListByUser(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toPenaltyList(penalties))
}

func (h *PenaltyHandler) Statistics(c echo.Context) error {
	stats, err := h.svc.Statistics(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func toPenaltyList(penalties []models.Penalty) []dto.PenaltyResponse {
	resp := make([]dto.PenaltyResponse, len(penalties))
	for i := range penalties {
		resp[i] = dto.ToPenaltyResponse(&penalties[i])
	}
	return resp
}
