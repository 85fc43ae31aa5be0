package routes

import (
	"fleetadmin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Guards are the middleware chains route groups are mounted behind.
type Guards struct {
	Authenticated gin.HandlersChain
	SuperAdmin    gin.HandlersChain
}

func NewGuards(jwtSecret string) Guards {
	auth := middleware.AuthRequired(jwtSecret)
	return Guards{
		Authenticated: gin.HandlersChain{auth},
		SuperAdmin:    gin.HandlersChain{auth, middleware.SuperAdminRequired()},
	}
}

// with returns a fresh chain of guard followed by handler.
func with(guard gin.HandlersChain, handler gin.HandlerFunc) gin.HandlersChain {
	chain := make(gin.HandlersChain, 0, len(guard)+1)
	return append(append(chain, guard...), handler)
}
