package routes

import (
	"fleetadmin/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes mounts authentication, OTP, local user management and the
// identity provider's users.
func SetupUserRoutes(r *gin.RouterGroup, guards Guards, userHandler *handlers.UserHandler, otpHandler *handlers.OTPHandler, identityHandler *handlers.IdentityHandler) {
	// Public
	r.POST("/user/signup", userHandler.Signup)
	r.POST("/auth/login", userHandler.Login)

	otp := r.Group("/otp")
	{
		otp.POST("/send", otpHandler.SendOTP)
		otp.POST("/verify", otpHandler.VerifyOTP)
		otp.POST("/reset-password", otpHandler.ResetPassword)
		otp.GET("/status", otpHandler.Status)
	}

	r.GET("/auth/me", with(guards.Authenticated, userHandler.Me)...)

	r.POST("/user", with(guards.SuperAdmin, userHandler.CreateUser)...)
	users := r.Group("/users", guards.SuperAdmin...)
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	firebase := r.Group("/firebase-users")
	{
		// Token verification and the OTP-gated email change are public.
		firebase.POST("/auth/verify", identityHandler.VerifyToken)
		firebase.POST("/change-email", identityHandler.ChangeEmail)

		admin := firebase.Group("", guards.SuperAdmin...)
		admin.GET("", identityHandler.ListUsers)
		admin.GET("/:id", identityHandler.GetUser)
		admin.PUT("/:id", identityHandler.UpdateUser)
		admin.DELETE("/:id", identityHandler.DeleteUser)
	}
}
