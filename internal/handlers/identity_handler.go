package handlers

import (
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

// IdentityHandler manages accounts held by the external identity provider.
type IdentityHandler struct {
	identityService services.IdentityService
}

func NewIdentityHandler(identityService services.IdentityService) *IdentityHandler {
	return &IdentityHandler{identityService: identityService}
}

func (h *IdentityHandler) ListUsers(c *gin.Context) {
	users, err := h.identityService.ListUsers(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, users)
}

func (h *IdentityHandler) GetUser(c *gin.Context) {
	user, err := h.identityService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// UpdateUser merges the body into the user document. The id field is ignored.
func (h *IdentityHandler) UpdateUser(c *gin.Context) {
	var data map[string]interface{}
	if !bindJSON(c, &data) {
		return
	}

	user, err := h.identityService.UpdateUser(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

func (h *IdentityHandler) DeleteUser(c *gin.Context) {
	if err := h.identityService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "User deleted successfully", nil)
}

func (h *IdentityHandler) VerifyToken(c *gin.Context) {
	var req validators.VerifyTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.Validate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	token, err := h.identityService.VerifyToken(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, token)
}

func (h *IdentityHandler) ChangeEmail(c *gin.Context) {
	var req validators.ChangeEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateChangeEmail(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.identityService.ChangeEmail(c.Request.Context(), &req); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Email updated successfully", gin.H{"uid": req.UID, "email": req.NewEmail})
}
