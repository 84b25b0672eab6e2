package handler

import (
	"net/http"

	"github.com/vfg2006/ppc-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ppc-optimizer-api/internal/api/handler/router"
	"github.com/vfg2006/ppc-optimizer-api/internal/scheduler"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/authenticating"
	"github.com/vfg2006/ppc-optimizer-api/internal/usecases/verifying"
	"github.com/vfg2006/ppc-optimizer-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Optimization(syncService *scheduler.OptimizationSyncService, summaryRepo repository.RunSummaryRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/optimization/run",
			Method:      http.MethodPost,
			Handler:     RunOptimization(syncService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/optimization/status",
			Method:      http.MethodGet,
			Handler:     GetOptimizationStatus(syncService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/optimization/runs",
			Method:      http.MethodGet,
			Handler:     ListRunSummaries(summaryRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/optimization/runs/:id",
			Method:      http.MethodGet,
			Handler:     GetRunSummary(summaryRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Verification(verifier *verifying.Verifier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/verification/run",
			Method:      http.MethodPost,
			Handler:     RunVerification(verifier),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
