package rooms

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
	rg.POST("/room-types", h.CreateRoomType)
	rg.GET("/room-types", h.ListRoomTypes)
	rg.GET("/room-types/:id", h.GetRoomType)
	rg.PUT("/room-types/:id", h.UpdateRoomType)
	rg.DELETE("/room-types/:id", h.DeleteRoomType)

	rg.POST("/rooms", h.CreateRoom)
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/dashboard", h.Dashboard)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.PUT("/rooms/:id", h.UpdateRoom)
	rg.DELETE("/rooms/:id", h.DeleteRoom)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDuplicateNumber):
		response.Error(c, http.StatusConflict, "DUPLICATE_ROOM_NUMBER", err.Error())
	case errors.Is(err, ErrIntegrity):
		response.Error(c, http.StatusConflict, "HAS_DEPENDENTS", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrRoomTypeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room type not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Room operation failed")
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

func (h *Handler) CreateRoomType(c *gin.Context) {
	var req RoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rt, err := h.service.CreateRoomType(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rt)
}

func (h *Handler) ListRoomTypes(c *gin.Context) {
	types, err := h.service.ListRoomTypes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, types)
}

func (h *Handler) GetRoomType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	rt, err := h.service.GetRoomType(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rt)
}

func (h *Handler) UpdateRoomType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rt, err := h.service.UpdateRoomType(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rt)
}

func (h *Handler) DeleteRoomType(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	reassignTo, _ := strconv.ParseInt(c.Query("reassign_to"), 10, 64)
	if err := h.service.DeleteRoomType(c.Request.Context(), id, reassignTo); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) ListRooms(c *gin.Context) {
	roomTypeID, _ := strconv.ParseInt(c.Query("room_type_id"), 10, 64)
	floor, _ := strconv.Atoi(c.Query("floor"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rooms, err := h.service.ListRooms(c.Request.Context(), RoomListQuery{
		RoomTypeID: roomTypeID,
		Floor:      floor,
		Status:     domain.RoomStatus(c.Query("status")),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	r, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
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
