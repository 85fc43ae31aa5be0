package handlers

import (
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	driverService services.DriverService
}

func NewDriverHandler(driverService services.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

func (h *DriverHandler) ListDrivers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := interfaces.DriverFilter{
		Status:         c.Query("status"),
		IncludeDeleted: utils.QueryBool(c, "include_deleted"),
	}

	drivers, total, err := h.driverService.ListDrivers(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, drivers, params, total)
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	driver, err := h.driverService.GetDriver(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, driver)
}

// CreateDriver accepts JSON, or multipart with the driver in "data" and an
// optional profile picture in "image".
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req validators.DriverCreateRequest
	image, ok := bindWithImage(c, &req)
	if !ok {
		return
	}
	if err := validators.ValidateDriverCreate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), &req, image)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, driver)
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.DriverUpdateRequest
	image, ok := bindWithImage(c, &req)
	if !ok {
		return
	}
	if err := validators.ValidateDriverUpdate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), id, &req, image)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, driver)
}

func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	driver, err := h.driverService.DeleteDriver(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Driver deleted successfully", driver)
}
