package routes

import (
	"fleetadmin/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(r *gin.RouterGroup, guards Guards, notificationHandler *handlers.NotificationHandler) {
	notifications := r.Group("/notifications", guards.SuperAdmin...)
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.GET("/:id", notificationHandler.GetNotification)
		notifications.POST("", notificationHandler.CreateNotification)
	}

	r.PATCH("/user-notifications/:id/read", with(guards.SuperAdmin, notificationHandler.MarkRead)...)

	subscriptions := r.Group("/subscriptions", guards.SuperAdmin...)
	{
		subscriptions.POST("", notificationHandler.Subscribe)
		subscriptions.DELETE("/:id", notificationHandler.Unsubscribe)
	}

	users := r.Group("/users", guards.SuperAdmin...)
	{
		users.GET("/:id/notifications", notificationHandler.ListInbox)
		users.GET("/:id/subscriptions", notificationHandler.ListSubscriptions)
	}
}
