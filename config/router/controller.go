package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akeren/waitlist-api/pkg/ratelimit"
)

// RESTController groups handlers under one mount point. prepare registers
// them when the controller is mounted.
type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	limiter      ratelimit.RateLimiter
	prepare      func(*RouterService, *RESTController)
}

// route identifies a handler by method and gin path pattern.
type route struct {
	method string
	path   string
}

func (r route) String() string {
	return r.method + " " + r.path
}

// mountedRoute is what the rate-limit middleware needs to know about a
// matched handler.
type mountedRoute struct {
	controller *RESTController
	limiter    ratelimit.RateLimiter
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: joinPath(mountPoint),
		prepare:    prepare,
	}
}

// NewVersionedRESTController mounts under /<version>/<mountPoint>.
func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: joinPath(version, mountPoint),
		version:    version,
		prepare:    prepare,
	}
}

// RateLimitWith applies limiter to every handler of the controller that has
// no handler-level limiter.
func (controller *RESTController) RateLimitWith(limiter ratelimit.RateLimiter) *RESTController {
	controller.limiter = limiter
	return controller
}

func joinPath(parts ...string) string {
	path := "/" + strings.Trim(strings.Join(parts, "/"), "/")
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}

func normalizePath(controller *RESTController, relativePath string) string {
	return joinPath(controller.mountPoint, relativePath)
}

// limiterFor resolves the handler limiter, then the controller limiter,
// then the default. The returned scope keeps the counters of different
// limiters apart when they share Redis.
func (routerService *RouterService) limiterFor(method, fullPath string) (ratelimit.RateLimiter, string, bool) {
	r := route{method: method, path: fullPath}

	mounted, found := routerService.routes[r]
	if !found {
		return nil, "", false
	}

	switch {
	case mounted.limiter != nil:
		return mounted.limiter, r.String(), true
	case mounted.controller.limiter != nil:
		return mounted.controller.limiter, mounted.controller.mountPoint, true
	default:
		return routerService.rateLimiter, "global", true
	}
}

func wrapHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil {
			result = InternalServerErrorResult("A handler returned an undefined result")
		}
		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func (routerService *RouterService) addHandler(
	method string,
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares []MiddlewareFunc,
) {
	r := route{method: method, path: normalizePath(controller, path)}

	if other, found := routerService.routes[r]; found {
		panic(fmt.Sprintf("%s is already registered by controller '%s'", r, other.controller.name))
	}
	routerService.routes[r] = mountedRoute{controller: controller, limiter: limiter}
	controller.handlerCount++

	chain := append(append([]MiddlewareFunc{}, middlewares...), wrapHandler(handler))
	routerService.engine.Handle(method, r.path, chain...)
	routerService.logger.Debug("Handler registered", "route", r.String())
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(http.MethodGet, controller, limiter, path, handler, middlewares)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(http.MethodPost, controller, limiter, path, handler, middlewares)
}
