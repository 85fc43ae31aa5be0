package handlers

import (
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

// RouteHandler serves routes and their stops.
type RouteHandler struct {
	routeService services.RouteService
}

func NewRouteHandler(routeService services.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

func (h *RouteHandler) ListRoutes(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := interfaces.RouteFilter{
		Status:         c.Query("status"),
		IncludeDeleted: utils.QueryBool(c, "include_deleted"),
	}

	routes, total, err := h.routeService.ListRoutes(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, routes, params, total)
}

func (h *RouteHandler) GetRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	route, err := h.routeService.GetRoute(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, route)
}

func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req validators.RouteCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateRouteCreate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	route, err := h.routeService.CreateRoute(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, route)
}

func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.RouteUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateRouteUpdate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	route, err := h.routeService.UpdateRoute(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, route)
}

func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	route, err := h.routeService.DeleteRoute(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Route deleted successfully", route)
}

func (h *RouteHandler) CreateStop(c *gin.Context) {
	var req validators.RouteStopCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateRouteStopCreate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	stop, err := h.routeService.CreateStop(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, stop)
}

func (h *RouteHandler) GetStop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stop, err := h.routeService.GetStop(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, stop)
}

// ListStopsByRoute returns the stops of a route ordered by stop_order.
func (h *RouteHandler) ListStopsByRoute(c *gin.Context) {
	routeID, ok := parseID(c, "routeId")
	if !ok {
		return
	}

	stops, err := h.routeService.ListStopsByRoute(c.Request.Context(), routeID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, stops)
}

func (h *RouteHandler) UpdateStop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.RouteStopUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateRouteStopUpdate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	stop, err := h.routeService.UpdateStop(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, stop)
}

func (h *RouteHandler) DeleteStop(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stop, err := h.routeService.DeleteStop(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Route stop deleted successfully", stop)
}
