package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lssauto/auto-scheduler/internal/dto"
	"github.com/lssauto/auto-scheduler/internal/models"
	"github.com/lssauto/auto-scheduler/internal/service"
	appErrors "github.com/lssauto/auto-scheduler/pkg/errors"
	"github.com/lssauto/auto-scheduler/pkg/response"
)

// RosterHandler exposes the roster mutation and listing endpoints.
type RosterHandler struct {
	service *service.RosterService
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(svc *service.RosterService) *RosterHandler {
	return &RosterHandler{service: svc}
}

func (h *RosterHandler) CreateTutor(c *gin.Context) {
	var req dto.CreateTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid tutor payload"))
		return
	}
	tutor, err := h.service.CreateTutor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tutor)
}

func (h *RosterHandler) ListTutors(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListTutors(c.Request.Context()))
}

func (h *RosterHandler) DeleteTutor(c *gin.Context) {
	if err := h.service.DeleteTutor(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *RosterHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

func (h *RosterHandler) UpdateCourseStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	course, err := h.service.UpdateCourseStatus(c.Request.Context(), c.Param("id"), models.CourseStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

func (h *RosterHandler) DeleteCourse(c *gin.Context) {
	if err := h.service.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *RosterHandler) CreateBuilding(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid building payload"))
		return
	}
	building, err := h.service.CreateBuilding(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, building)
}

func (h *RosterHandler) ListBuildings(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListBuildings(c.Request.Context()))
}

func (h *RosterHandler) DeleteBuilding(c *gin.Context) {
	if err := h.service.DeleteBuilding(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *RosterHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

func (h *RosterHandler) ListRooms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListRooms(c.Request.Context()))
}

func (h *RosterHandler) DeleteRoom(c *gin.Context) {
	if err := h.service.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *RosterHandler) AddTimeBlock(c *gin.Context) {
	var req dto.AddTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time block payload"))
		return
	}
	req.TutorID = c.Param("id")
	block, err := h.service.AddTimeBlock(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, block)
}

func (h *RosterHandler) RemoveTimeBlock(c *gin.Context) {
	if _, err := h.service.RemoveTimeBlock(c.Request.Context(), c.Param("id"), c.Param("blockId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
