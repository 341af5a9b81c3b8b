package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lssauto/auto-scheduler/internal/dto"
	"github.com/lssauto/auto-scheduler/internal/service"
	"github.com/lssauto/auto-scheduler/pkg/response"
)

// TimetableHandler serves rendered weekly schedules, optionally through
// the Redis response cache.
type TimetableHandler struct {
	roster *service.RosterService
	cache  *service.CacheService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(roster *service.RosterService, cache *service.CacheService) *TimetableHandler {
	return &TimetableHandler{roster: roster, cache: cache}
}

// Tutor renders one tutor's weekly timetable.
func (h *TimetableHandler) Tutor(c *gin.Context) {
	h.serve(c, "tutor", c.Param("id"), func(ctx context.Context, id string) (*dto.Timetable, error) {
		return h.roster.TutorTimetable(ctx, id)
	})
}

// Room renders one room's weekly timetable.
func (h *TimetableHandler) Room(c *gin.Context) {
	h.serve(c, "room", c.Param("id"), func(ctx context.Context, id string) (*dto.Timetable, error) {
		return h.roster.RoomTimetable(ctx, id)
	})
}

func (h *TimetableHandler) serve(c *gin.Context, kind, id string, load func(context.Context, string) (*dto.Timetable, error)) {
	ctx := c.Request.Context()

	var key string
	if h.cache.Enabled() {
		key = h.cache.TimetableKey(kind, id, h.roster.Revision())
		var cached dto.Timetable
		if h.cache.GetJSON(ctx, key, &cached) {
			response.JSON(c, http.StatusOK, &cached, map[string]interface{}{"cache_hit": true})
			return
		}
	}

	timetable, err := load(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if key != "" {
		h.cache.SetJSON(ctx, key, timetable)
	}
	response.JSON(c, http.StatusOK, timetable)
}
