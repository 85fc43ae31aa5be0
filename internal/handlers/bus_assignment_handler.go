package handlers

import (
	"time"

	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

type BusAssignmentHandler struct {
	assignmentService services.BusAssignmentService
}

func NewBusAssignmentHandler(assignmentService services.BusAssignmentService) *BusAssignmentHandler {
	return &BusAssignmentHandler{assignmentService: assignmentService}
}

// ListAssignments filters by status, bus_id, driver_id and route_id.
// date=today keeps only assignments started since local midnight.
func (h *BusAssignmentHandler) ListAssignments(c *gin.Context) {
	filter := interfaces.BusAssignmentFilter{Status: c.Query("status")}

	var ok bool
	if filter.BusID, ok = queryID(c, "bus_id"); !ok {
		return
	}
	if filter.DriverID, ok = queryID(c, "driver_id"); !ok {
		return
	}
	if filter.RouteID, ok = queryID(c, "route_id"); !ok {
		return
	}

	switch c.Query("date") {
	case "":
	case "today":
		since := utils.StartOfDay(time.Now())
		filter.Since = &since
	default:
		utils.BadRequestResponse(c, "date must be \"today\"")
		return
	}

	params := utils.GetPaginationParams(c)
	assignments, total, err := h.assignmentService.ListAssignments(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, assignments, params, total)
}

func (h *BusAssignmentHandler) GetAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, assignment)
}

func (h *BusAssignmentHandler) CreateAssignment(c *gin.Context) {
	var req validators.BusAssignmentCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.Validate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, assignment)
}

func (h *BusAssignmentHandler) UpdateAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.BusAssignmentUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.Validate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, assignment)
}

func (h *BusAssignmentHandler) EndAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.EndAssignment(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Assignment ended", assignment)
}

func (h *BusAssignmentHandler) DeleteAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.DeleteAssignment(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Assignment deleted successfully", assignment)
}
