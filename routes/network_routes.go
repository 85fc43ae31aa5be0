package routes

import (
	"fleetadmin/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupNetworkRoutes mounts routes, route stops, terminals and terminal logs.
func SetupNetworkRoutes(r *gin.RouterGroup, guards Guards, routeHandler *handlers.RouteHandler, terminalHandler *handlers.TerminalHandler) {
	routes := r.Group("/routes", guards.SuperAdmin...)
	{
		routes.GET("", routeHandler.ListRoutes)
		routes.GET("/:id", routeHandler.GetRoute)
		routes.POST("", routeHandler.CreateRoute)
		routes.PATCH("/:id", routeHandler.UpdateRoute)
		routes.DELETE("/:id", routeHandler.DeleteRoute)
	}

	stops := r.Group("/route-stops", guards.SuperAdmin...)
	{
		stops.POST("", routeHandler.CreateStop)
		stops.GET("/route/:routeId", routeHandler.ListStopsByRoute)
		stops.GET("/:id", routeHandler.GetStop)
		stops.PATCH("/:id", routeHandler.UpdateStop)
		stops.DELETE("/:id", routeHandler.DeleteStop)
	}

	terminals := r.Group("/terminals", guards.SuperAdmin...)
	{
		terminals.GET("", terminalHandler.ListTerminals)
		terminals.GET("/:id", terminalHandler.GetTerminal)
		terminals.POST("", terminalHandler.CreateTerminal)
		terminals.PATCH("/:id", terminalHandler.UpdateTerminal)
		terminals.DELETE("/:id", terminalHandler.DeleteTerminal)
	}

	logs := r.Group("/terminal-logs", guards.SuperAdmin...)
	{
		logs.GET("", terminalHandler.ListLogs)
		logs.POST("", terminalHandler.CreateLog)
	}
}
