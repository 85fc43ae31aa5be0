package routes

import (
	"fleetadmin/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupFleetRoutes mounts buses, live bus status, drivers and assignments.
func SetupFleetRoutes(r *gin.RouterGroup, guards Guards, busHandler *handlers.BusHandler, driverHandler *handlers.DriverHandler, assignmentHandler *handlers.BusAssignmentHandler) {
	buses := r.Group("/buses", guards.SuperAdmin...)
	{
		buses.GET("", busHandler.ListBuses)
		buses.GET("/overview", busHandler.GetOverview)
		buses.GET("/:id", busHandler.GetBus)
		buses.POST("", busHandler.CreateBus)
		buses.PATCH("/:id", busHandler.UpdateBus)
		buses.DELETE("/:id", busHandler.DeleteBus)
	}

	status := r.Group("/bus-status", guards.SuperAdmin...)
	{
		status.GET("", busHandler.ListStatuses)
		status.GET("/bus/:busId", busHandler.GetStatusByBus)
		status.GET("/:id", busHandler.GetStatus)
		status.POST("", busHandler.CreateStatus)
		status.PATCH("/:id", busHandler.UpdateStatus)
		status.DELETE("/:id", busHandler.DeleteStatus)
	}

	drivers := r.Group("/drivers", guards.SuperAdmin...)
	{
		drivers.GET("", driverHandler.ListDrivers)
		drivers.GET("/:id", driverHandler.GetDriver)
		drivers.POST("", driverHandler.CreateDriver)
		drivers.PATCH("/:id", driverHandler.UpdateDriver)
		drivers.DELETE("/:id", driverHandler.DeleteDriver)
	}

	assignments := r.Group("/bus-assignments", guards.SuperAdmin...)
	{
		assignments.GET("", assignmentHandler.ListAssignments)
		assignments.GET("/:id", assignmentHandler.GetAssignment)
		assignments.POST("", assignmentHandler.CreateAssignment)
		assignments.PATCH("/:id", assignmentHandler.UpdateAssignment)
		assignments.POST("/:id/end", assignmentHandler.EndAssignment)
		assignments.DELETE("/:id", assignmentHandler.DeleteAssignment)
	}
}
