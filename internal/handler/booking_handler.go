package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/voltride/rental-service/internal/dto"
	"github.com/voltride/rental-service/internal/models"
	"github.com/voltride/rental-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListBookings)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/status", h.TransitionBooking)
	bookings.DELETE("/:id", h.CancelBooking)
	bookings.POST("/:id/damage-report", h.ReportDamage)
	bookings.PUT("/:id/location", h.UpdateLocation)
}

// actorFromHeaders reads the identity the caller layer resolved. There is no
// session handling here; the gateway authenticates and passes the result on.
func actorFromHeaders(c echo.Context) (models.Actor, error) {
	id, err := strconv.ParseUint(c.Request().Header.Get("X-Actor-Id"), 10, 64)
	if err != nil {
		return models.Actor{}, echo.NewHTTPError(http.StatusBadRequest, "missing or invalid X-Actor-Id header")
	}
	role := models.Role(c.Request().Header.Get("X-Actor-Role"))
	if !models.KnownRole(role) {
		return models.Actor{}, echo.NewHTTPError(http.StatusBadRequest, "missing or invalid X-Actor-Role header")
	}
	return models.Actor{
		ID:       uint(id),
		Role:     role,
		Verified: c.Request().Header.Get("X-Actor-Verified") == "true",
	}, nil
}

// toHTTPError maps the service error kinds onto status codes. ConflictRetry
// and InvalidTransition both answer 409; the message distinguishes them.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrConflictRetry):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPreconditionFailed):
		return echo.NewHTTPError(http.StatusPreconditionFailed, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func bookingID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	return uint(id), nil
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	actor, err := actorFromHeaders(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.VehicleID == 0 || req.StartStationID == 0 || req.StartTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "vehicle_id, start_station_id and start_time are required")
	}

	input := service.CreateBookingInput{
		CustomerID:     req.CustomerID,
		VehicleID:      req.VehicleID,
		StartStationID: req.StartStationID,
		EndStationID:   req.EndStationID,
		StartTime:      req.StartTime,
		Type:           req.Type,
	}
	if req.EndTime != nil {
		input.EndTime = *req.EndTime
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), actor, input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) TransitionBooking(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}
	actor, err := actorFromHeaders(c)
	if err != nil {
		return err
	}

	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	booking, err := h.svc.Transition(c.Request().Context(), id, req.Status, actor, service.TransitionExtras{
		DamageReport:  req.DamageReport,
		PenaltyAmount: req.PenaltyAmount,
		PenaltyReason: req.PenaltyReason,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}
	actor, err := actorFromHeaders(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), id, actor)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ReportDamage(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}
	actor, err := actorFromHeaders(c)
	if err != nil {
		return err
	}

	var req dto.DamageReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}

	booking, err := h.svc.ReportDamage(c.Request().Context(), id, actor, req.Description, req.PenaltyAmount, req.Images)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateLocation(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	var req dto.LocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateLocation(c.Request().Context(), id, service.LocationUpdate{
		Lat:           req.Lat,
		Lng:           req.Lng,
		PenaltyAmount: req.PenaltyAmount,
		PenaltyReason: req.PenaltyReason,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	var customerID *uint
	if s := c.QueryParam("customer_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		id := uint(v)
		customerID = &id
	}

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), customerID, status)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}
