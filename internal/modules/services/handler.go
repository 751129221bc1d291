package services

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.POST("/service-categories", h.CreateCategory)
	rg.GET("/service-categories", h.ListCategories)
	rg.GET("/service-categories/:id", h.GetCategory)
	rg.PUT("/service-categories/:id", h.UpdateCategory)
	rg.DELETE("/service-categories/:id", h.DeleteCategory)

	rg.POST("/services", h.CreateService)
	rg.GET("/services", h.ListServices)
	rg.GET("/services/dashboard", h.Dashboard)
	rg.GET("/services/:id", h.GetService)
	rg.PUT("/services/:id", h.UpdateService)
	rg.DELETE("/services/:id", h.DeleteService)
	rg.GET("/services/:id/availability", h.Availability)

	rg.POST("/service-bookings", h.CreateBooking)
	rg.GET("/service-bookings", h.ListBookings)
	rg.GET("/service-bookings/:id", h.GetBooking)
	rg.PUT("/service-bookings/:id", h.UpdateBooking)
	rg.PATCH("/service-bookings/:id/status", h.TransitionBooking)
	rg.DELETE("/service-bookings/:id", h.DeleteBooking)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var conflictErr *ConflictError
	switch {
	case errors.As(err, &conflictErr):
		response.ErrorWithDetails(c, http.StatusConflict, "SLOT_CONFLICT",
			"Time slot is already taken", conflictErr.Conflicts)
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrIntegrity):
		response.Error(c, http.StatusConflict, "HAS_DEPENDENTS", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service category not found")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service booking not found")
	case errors.Is(err, ErrCustomerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Service operation failed")
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func operatorID(c *gin.Context) int64 {
	id, _ := c.Get("operator_id")
	opID, _ := id.(int64)
	return opID
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

func (h *Handler) ListCategories(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	cats, err := h.service.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	cat, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, svc)
}

func (h *Handler) ListServices(c *gin.Context) {
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListServices(c.Request.Context(), ServiceListQuery{
		CategoryID:   categoryID,
		Status:       domain.ServiceStatus(c.Query("status")),
		FeaturedOnly: c.Query("featured") == "true",
		Search:       c.Query("search"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) Availability(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}
	start, err := combineDateTime(date, c.Query("start_time"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_time must be HH:MM")
		return
	}
	participants, _ := strconv.Atoi(c.DefaultQuery("participants", "1"))
	excludeID, _ := strconv.ParseInt(c.Query("exclude_booking_id"), 10, 64)

	res, err := h.service.CheckAvailability(c.Request.Context(), id, start, participants, excludeID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	in, err := req.toInput(operatorID(c))
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

func (h *Handler) ListBookings(c *gin.Context) {
	serviceID, _ := strconv.ParseInt(c.Query("service_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListBookings(
		c.Request.Context(),
		domain.ServiceBookingStatus(c.Query("status")),
		c.Query("date"),
		serviceID,
		c.Query("search"),
		limit,
		offset,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetBooking(c *gin.Context) {
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

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	in, err := req.toInput(operatorID(c))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) TransitionBooking(c *gin.Context) {
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

func (h *Handler) DeleteBooking(c *gin.Context) {
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
