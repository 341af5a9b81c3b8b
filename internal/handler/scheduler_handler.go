package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lssauto/auto-scheduler/internal/dto"
	"github.com/lssauto/auto-scheduler/internal/service"
	appErrors "github.com/lssauto/auto-scheduler/pkg/errors"
	"github.com/lssauto/auto-scheduler/pkg/response"
)

// SchedulerHandler exposes the scheduling-run endpoints.
type SchedulerHandler struct {
	service *service.SchedulerService
}

// NewSchedulerHandler constructs the handler.
func NewSchedulerHandler(svc *service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{service: svc}
}

// Run triggers a full scheduling pass and returns the run report.
func (h *SchedulerHandler) Run(c *gin.Context) {
	var req dto.RunScheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid run payload"))
			return
		}
	}
	report, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Report returns a previously produced run report while it is retained.
func (h *SchedulerHandler) Report(c *gin.Context) {
	runID := c.Param("id")
	report, ok := h.service.Report(runID)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("run %s not found", runID)))
		return
	}
	response.JSON(c, http.StatusOK, report)
}
