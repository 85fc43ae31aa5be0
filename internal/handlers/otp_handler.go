package handlers

import (
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

type OTPHandler struct {
	otpService services.OTPService
}

func NewOTPHandler(otpService services.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req validators.SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateSendOTP(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	result, err := h.otpService.SendOTP(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Verification code sent", result)
}

func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var req validators.VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateVerifyOTP(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.otpService.VerifyOTP(c.Request.Context(), &req); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Verification successful", gin.H{"verified": true})
}

func (h *OTPHandler) ResetPassword(c *gin.Context) {
	var req validators.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateResetPassword(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.otpService.ResetPassword(c.Request.Context(), &req); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Password has been reset", nil)
}

func (h *OTPHandler) Status(c *gin.Context) {
	utils.SuccessResponse(c, h.otpService.Status())
}
