package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/available", h.AvailableRooms)

	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/dashboard", h.Dashboard)
	rg.GET("/bookings/occupancy-grid", h.Grid)
	rg.GET("/bookings/integrity-scan", h.IntegrityScan)
	rg.GET("/bookings/:id", h.Get)
	rg.PUT("/bookings/:id", h.Update)
	rg.PATCH("/bookings/:id/status", h.Transition)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.GET("/bookings/:id/payments", h.Payments)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var conflictErr *ConflictError
	switch {
	case errors.As(err, &conflictErr):
		response.ErrorWithDetails(c, http.StatusConflict, "BOOKING_CONFLICT",
			"Room is not available for the requested dates", conflictErr.Conflicts)
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrCustomerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking operation failed")
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) AvailableRooms(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
		return
	}

	roomTypeID, _ := strconv.ParseInt(c.Query("room_type_id"), 10, 64)
	floor, _ := strconv.Atoi(c.Query("floor"))
	minCapacity, _ := strconv.Atoi(c.Query("min_capacity"))

	rooms, err := h.service.FindAvailableRooms(c.Request.Context(), checkIn, checkOut, RoomFilter{
		RoomTypeID:  roomTypeID,
		Floor:       floor,
		MinCapacity: minCapacity,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	in, err := req.toInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.service.List(
		c.Request.Context(),
		domain.BookingStatus(c.Query("status")),
		c.Query("date"),
		c.Query("search"),
		limit,
		offset,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in_date must be YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out_date must be YYYY-MM-DD")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, UpdateBookingInput{
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Transition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) Grid(c *gin.Context) {
	start := time.Now()
	if s := c.Query("start"); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be YYYY-MM-DD")
			return
		}
		start = parsed
	}
	end := start
	if s := c.Query("end"); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be YYYY-MM-DD")
			return
		}
		end = parsed
	}

	roomTypeID, _ := strconv.ParseInt(c.Query("room_type_id"), 10, 64)
	floor, _ := strconv.Atoi(c.Query("floor"))

	grid, err := h.service.Grid(c.Request.Context(), start, end, RoomGridFilter{
		RoomTypeID: roomTypeID,
		Floor:      floor,
		Status:     domain.RoomStatus(c.Query("room_status")),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grid)
}

func (h *Handler) IntegrityScan(c *gin.Context) {
	rows, err := h.service.IntegrityScan(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Payments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payments)
}
