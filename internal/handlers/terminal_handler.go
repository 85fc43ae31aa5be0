package handlers

import (
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

type TerminalHandler struct {
	terminalService services.TerminalService
}

func NewTerminalHandler(terminalService services.TerminalService) *TerminalHandler {
	return &TerminalHandler{terminalService: terminalService}
}

func (h *TerminalHandler) ListTerminals(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := interfaces.TerminalFilter{
		Status:         c.Query("status"),
		IncludeDeleted: utils.QueryBool(c, "include_deleted"),
	}

	terminals, total, err := h.terminalService.ListTerminals(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, terminals, params, total)
}

func (h *TerminalHandler) GetTerminal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	terminal, err := h.terminalService.GetTerminal(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, terminal)
}

func (h *TerminalHandler) CreateTerminal(c *gin.Context) {
	var req validators.TerminalCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateTerminalCreate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	terminal, err := h.terminalService.CreateTerminal(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, terminal)
}

func (h *TerminalHandler) UpdateTerminal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.TerminalUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateTerminalUpdate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	terminal, err := h.terminalService.UpdateTerminal(c.Request.Context(), id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, terminal)
}

func (h *TerminalHandler) DeleteTerminal(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	terminal, err := h.terminalService.DeleteTerminal(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Terminal deleted successfully", terminal)
}

func (h *TerminalHandler) CreateLog(c *gin.Context) {
	var req validators.TerminalLogCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.Validate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	entry, err := h.terminalService.CreateLog(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, entry)
}

// ListLogs filters by terminal_id, bus_id and event_type.
func (h *TerminalHandler) ListLogs(c *gin.Context) {
	terminalID, ok := queryID(c, "terminal_id")
	if !ok {
		return
	}
	busID, ok := queryID(c, "bus_id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	filter := interfaces.TerminalLogFilter{
		TerminalID: terminalID,
		BusID:      busID,
		EventType:  c.Query("event_type"),
	}

	logs, total, err := h.terminalService.ListLogs(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, logs, params, total)
}
