package routes

import (
	"fleetadmin/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupDashboardRoutes(r *gin.RouterGroup, guards Guards, dashboardHandler *handlers.DashboardHandler) {
	dashboard := r.Group("/dashboard", guards.SuperAdmin...)
	{
		dashboard.GET("/overview", dashboardHandler.Overview)
		dashboard.GET("/reports", dashboardHandler.ListReports)
		dashboard.GET("/reports/:name", dashboardHandler.Report)
		dashboard.GET("/reports/:name/export", dashboardHandler.ExportReport)
	}

	r.GET("/system-logs", with(guards.SuperAdmin, dashboardHandler.ListSystemLogs)...)
}
