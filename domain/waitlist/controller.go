package waitlist

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/pkg/constants"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/ratelimit"
)

const adminTokenHeader = "X-Admin-Token"

func newWaitlistController(service WaitlistService, adminToken string) *router.RESTController {
	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			registrationLimiter := createRegistrationRateLimiter(rs)
			adminOnly := requireAdminToken(adminToken)

			metrics := newRegistrationMetrics()
			rs.RegisterCollector(metrics.total)

			rs.AddPostHandler(c, registrationLimiter, "", registerHandler(service, metrics))
			rs.AddPostHandler(c, registrationLimiter, "/submit", submitHandler(service, metrics))
			rs.AddGetHandler(c, nil, "/stats", getStatsHandler(service))
			rs.AddGetHandler(c, nil, "/position", getPositionHandler(service))
			rs.AddGetHandler(c, nil, "/entries", getAllEntriesHandler(service), adminOnly)
			rs.AddGetHandler(c, nil, "/entries/:id", getEntryHandler(service), adminOnly)
		},
	)
}

func createRegistrationRateLimiter(rs *router.RouterService) ratelimit.RateLimiter {
	return rs.NewRateLimiter(constants.RegistrationRateLimitRequests, time.Minute)
}

// requireAdminToken guards the operator endpoints. With no token configured
// they are unreachable.
func requireAdminToken(expected string) router.MiddlewareFunc {
	return func(ctx *router.RequestContext) {
		provided := ctx.GetHeader(adminTokenHeader)

		if expected == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			router.GetLogger(ctx).Warn("Rejected admin request", "path", ctx.FullPath())
			result := router.UnauthorizedResult("A valid admin token is required")
			ctx.AbortWithStatusJSON(result.StatusCode, result.ToJSON())
			return
		}

		ctx.Next()
	}
}

// bindJSON decodes and validates the body into req. A non-nil result is the
// 400 to return.
func bindJSON(ctx *router.RequestContext, req any) *router.ServiceResult {
	err := ctx.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	router.GetLogger(ctx).Warn("Failed to bind request", "error", err)

	if validationErrors := apperrors.FormatValidationErrors(err, req); len(validationErrors) > 0 {
		return router.BadRequestResult("Invalid request payload", validationErrors)
	}
	return router.BadRequestResult("Invalid request body", nil)
}

func registerHandler(service WaitlistService, metrics *registrationMetrics) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req RegisterRequest
		if result := bindJSON(ctx, &req); result != nil {
			return result
		}

		response, err := service.Register(ctx.Request.Context(), &req)
		metrics.observe("register", err)
		if err != nil {
			return router.ResultFromError(err)
		}

		return router.CreatedResult(response, "Waitlist entry")
	}
}

func submitHandler(service WaitlistService, metrics *registrationMetrics) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req SubmitRequest
		if result := bindJSON(ctx, &req); result != nil {
			return result
		}

		response, err := service.SubmitFeedback(ctx.Request.Context(), &req)
		metrics.observe("submit", err)
		if err != nil {
			return router.ResultFromError(err)
		}

		return router.CreatedResult(response, "Waitlist entry")
	}
}

func getStatsHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.GetStats(ctx.Request.Context())
		if err != nil {
			return router.ResultFromError(err)
		}

		return router.OKResult(response, "Waitlist stats retrieved successfully")
	}
}

func getPositionHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		email := strings.TrimSpace(ctx.Query("email"))
		if email == "" {
			return router.BadRequestResult("email query parameter is required", nil)
		}

		response, err := service.GetPosition(ctx.Request.Context(), email)
		if err != nil {
			return router.ResultFromError(err)
		}

		if response == nil {
			return router.OKResult(nil, "Email is not on the waitlist")
		}

		return router.OKResult(response, "Waitlist position retrieved successfully")
	}
}

func getEntryHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		response, err := service.FindEntryByID(ctx.Request.Context(), id)
		if err != nil {
			return router.ResultFromError(err)
		}

		return router.OKResult(response, "Waitlist entry retrieved successfully")
	}
}

func getAllEntriesHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.GetAllEntries(ctx.Request.Context())
		if err != nil {
			return router.ResultFromError(err)
		}

		return router.OKResult(response, "Waitlist entries retrieved successfully")
	}
}
