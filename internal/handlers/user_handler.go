package handlers

import (
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Signup registers a passenger account. Public.
func (h *UserHandler) Signup(c *gin.Context) {
	var req validators.SignupRequest
	image, ok := bindWithImage(c, &req)
	if !ok {
		return
	}
	if err := validators.ValidateSignup(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), &req, image)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateLogin(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Login successful", result)
}

// Me returns the authenticated caller.
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := c.Get(utils.ContextUserID)
	if !exists {
		utils.UnauthorizedResponse(c)
		return
	}

	id, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// CreateUser provisions any role, including staff accounts.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req validators.CreateUserRequest
	image, ok := bindWithImage(c, &req)
	if !ok {
		return
	}
	if err := validators.ValidateCreateUser(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req, image)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := interfaces.UserFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, users, params, total)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validators.UpdateUserRequest
	image, ok := bindWithImage(c, &req)
	if !ok {
		return
	}
	if err := validators.ValidateUpdateUser(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &req, image)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "User deleted successfully", user)
}
