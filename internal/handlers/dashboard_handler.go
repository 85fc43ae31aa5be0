package handlers

import (
	"fmt"
	"net/http"

	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	systemLogService services.SystemLogService
}

func NewDashboardHandler(dashboardService services.DashboardService, systemLogService services.SystemLogService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		systemLogService: systemLogService,
	}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, overview)
}

func (h *DashboardHandler) ListReports(c *gin.Context) {
	utils.SuccessResponse(c, services.ReportNames)
}

func (h *DashboardHandler) Report(c *gin.Context) {
	report, err := h.dashboardService.Report(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}

// ExportReport downloads the report as a PDF.
func (h *DashboardHandler) ExportReport(c *gin.Context) {
	data, filename, err := h.dashboardService.ExportReport(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ListSystemLogs filters the audit trail by user_id and action.
func (h *DashboardHandler) ListSystemLogs(c *gin.Context) {
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	filter := interfaces.SystemLogFilter{
		UserID: userID,
		Action: c.Query("action"),
	}

	logs, total, err := h.systemLogService.List(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, logs, params, total)
}
