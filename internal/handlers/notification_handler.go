package handlers

import (
	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/services"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves notifications, user inboxes and subscriptions.
type NotificationHandler struct {
	notificationService services.NotificationService
	subscriptionService services.SubscriptionService
}

func NewNotificationHandler(notificationService services.NotificationService, subscriptionService services.SubscriptionService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		subscriptionService: subscriptionService,
	}
}

// CreateNotification stores the notification and fans it out to inboxes.
// sender_id defaults to the caller.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req validators.NotificationCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateNotificationCreate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	notification, err := h.notificationService.CreateNotification(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, notification)
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := interfaces.NotificationFilter{
		Scope:    c.Query("scope"),
		Priority: c.Query("priority"),
		Type:     c.Query("type"),
	}

	notifications, total, err := h.notificationService.ListNotifications(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, notifications, params, total)
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.GetNotification(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, notification)
}

func (h *NotificationHandler) ListInbox(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	entries, total, err := h.notificationService.ListInbox(c.Request.Context(), userID, utils.QueryBool(c, "unread"), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	listResponse(c, entries, params, total)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entry, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, entry)
}

func (h *NotificationHandler) Subscribe(c *gin.Context) {
	var req validators.SubscriptionCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validators.ValidateSubscriptionCreate(&req); err != nil {
		utils.HandleError(c, err)
		return
	}

	subscription, err := h.subscriptionService.Subscribe(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, subscription)
}

func (h *NotificationHandler) ListSubscriptions(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	subscriptions, err := h.subscriptionService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, subscriptions)
}

func (h *NotificationHandler) Unsubscribe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	subscription, err := h.subscriptionService.Unsubscribe(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, "Unsubscribed successfully", subscription)
}
