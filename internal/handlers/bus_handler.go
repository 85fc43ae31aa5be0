package handlers

import (
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

type BusHandler struct {
	busService    services.BusService
	statusService services.BusStatusService
}

func NewBusHandler(busService services.BusService, statusService services.BusStatusService) *BusHandler {
	return &BusHandler{
		busService:    busService,
		statusService: statusService,
	}
}

// ListBuses returns non-deleted buses. include_deleted=true lists every bus.
func (h *BusHandler) ListBuses(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := interfaces.BusFilter{
		Status:         c.Query("status"),
		IncludeDeleted: utils.QueryBool(c, "include_deleted"),
	}

	buses, total, err := h.busService.ListBuses(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, buses, params, total)
}

func (h *BusHandler) GetBus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bus, err := h.busService.GetBus(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, bus)
}

func (h *BusHandler) CreateBus(c *gin.Context) {
	var req validators.BusCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateBusCreate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	bus, err := h.busService.CreateBus(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, bus)
}

func (h *BusHandler) UpdateBus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.BusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateBusUpdate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	bus, err := h.busService.UpdateBus(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, bus)
}

func (h *BusHandler) DeleteBus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bus, err := h.busService.DeleteBus(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Bus deleted successfully", bus)
}

// GetOverview joins every bus with its live status and active assignment.
func (h *BusHandler) GetOverview(c *gin.Context) {
	overview, err := h.busService.Overview(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, overview)
}

func (h *BusHandler) ListStatuses(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	statuses, total, err := h.statusService.ListStatuses(c.Request.Context(), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, statuses, params, total)
}

func (h *BusHandler) GetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := h.statusService.GetStatus(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, status)
}

func (h *BusHandler) GetStatusByBus(c *gin.Context) {
	busID, ok := parseID(c, "busId")
	if !ok {
		return
	}

	status, err := h.statusService.GetStatusByBus(c.Request.Context(), busID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, status)
}

func (h *BusHandler) CreateStatus(c *gin.Context) {
	var req validators.BusStatusCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.Validate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	status, err := h.statusService.CreateStatus(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, status)
}

// UpdateStatus applies only the live fields; anything else in the body is ignored.
func (h *BusHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.BusStatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.Validate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	status, err := h.statusService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, status)
}

func (h *BusHandler) DeleteStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := h.statusService.DeleteStatus(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Bus status deleted successfully", status)
}
