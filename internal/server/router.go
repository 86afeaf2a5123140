// Package server assembles the HTTP router: middleware, public routes and the HR-only routes.
package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/metrics"
	"github.com/safinirasol/WellMind-IBM/internal/server/middleware"
)

// APIPrefix is the path prefix of every API route.
const APIPrefix = "/api"

// Registrar mounts a handler's routes.
type Registrar interface {
	Register(rg gin.IRoutes)
}

// Deps holds the router's handlers and middleware dependencies. Nil handlers are not mounted.
type Deps struct {
	Log         *zap.Logger
	ServiceName string
	CORSOrigins []string
	// RateLimiter bounds write requests per client IP. If nil, requests are not limited.
	RateLimiter *middleware.IPRateLimiter
	// Metrics instruments requests and serves /metrics. If nil, neither is installed.
	Metrics *metrics.Metrics
	// HRTokens guards the HR routes. If nil, the HR routes are open.
	HRTokens middleware.TokenValidator

	// Public routes.
	Health Registrar
	Auth   Registrar
	Survey Registrar

	// HR routes.
	Dashboard Registrar
	Employees Registrar
	Reports   Registrar
	Notify    Registrar
	Advisory  Registrar
	Chat      Registrar
}

// NewRouter returns the configured gin engine.
//
// Route → handler mapping:
//   - GET  /api/health, /api/ready                 → internal/health/handler
//   - POST /api/auth/hr                            → internal/auth/handler
//   - POST /api/predict, /api/survey, /api/analyze → internal/survey/handler
//   - GET  /api/dashboard                          → internal/dashboard/handler (HR)
//   - GET  /api/employees, /api/employee/:id/history → internal/employee/handler (HR)
//   - POST /api/employees/export-report            → internal/report/handler (HR)
//   - GET|POST /api/employees/auto-notify          → internal/notify/handler (HR)
//   - POST /api/employees/send-email               → internal/advisory/handler (HR)
//   - POST /api/chat                               → internal/chat/handler (HR)
//   - GET  /metrics                                → internal/metrics
func NewRouter(deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	serviceName := deps.ServiceName
	if serviceName == "" {
		serviceName = "wellmind-api"
	}

	r := gin.New()
	r.Use(
		otelgin.Middleware(serviceName),
		middleware.RequestLogger(log.Named("http"), "/metrics", APIPrefix+"/health"),
		middleware.Recovery(log),
		middleware.CORS(deps.CORSOrigins),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group(APIPrefix, middleware.RateLimit(deps.RateLimiter))
	for _, reg := range []Registrar{deps.Health, deps.Auth, deps.Survey} {
		if reg != nil {
			reg.Register(api)
		}
	}

	hr := api.Group("")
	if deps.HRTokens != nil {
		hr.Use(middleware.RequireBearer(deps.HRTokens))
	}
	for _, reg := range []Registrar{deps.Dashboard, deps.Employees, deps.Reports, deps.Notify, deps.Advisory, deps.Chat} {
		if reg != nil {
			reg.Register(hr)
		}
	}
	return r
}
