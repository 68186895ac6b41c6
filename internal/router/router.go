package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/vecindapp/auth-service/api/handler"
	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/internal/middleware"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Membership *apiHandler.MembershipHandler
	Health     *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, authenticate Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public auth routes
	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)

	// Membership workflow; deciding a request is board-only
	boardOnly := middleware.RequireRole(domain.RoleBoard)
	r.POST("/api/auth/request-socio", authenticate(handlers.Membership.RequestSocio))
	r.POST("/api/auth/validate-socio-request", authenticate(boardOnly(handlers.Membership.ValidateSocioRequest)))

	return r
}
