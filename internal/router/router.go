package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	v1 "github.com/dchoinie/church-membership-app-sub000/internal/controllers/v1"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/dchoinie/church-membership-app-sub000/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router with all middlewares.
//
// The returned teardown function has to be called before the process
// exits or another router is configured, it unregisters the Prometheus
// collectors.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Csrf-Token"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/healthz", GetHealth)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	// API v1 setup
	v1group := group.Group("/v1")
	{
		v1group.GET("", GetV1)
		v1group.OPTIONS("", OptionsV1)
	}

	// Everything below requires authentication
	authed := v1group.Group("")
	authed.Use(auth.Middleware())

	v1.RegisterSessionRoutes(authed.Group("/session"))
	v1.RegisterChurchRoutes(authed.Group("/church"))
	v1.RegisterHouseholdRoutes(authed.Group("/households"))
	v1.RegisterMemberRoutes(authed.Group("/members"))
	v1.RegisterCategoryRoutes(authed.Group("/giving-categories"))
	v1.RegisterGivingRoutes(authed.Group("/giving"))
	v1.RegisterImportRoutes(authed.Group("/giving-import"))
	v1.RegisterServiceRoutes(authed.Group("/services"))
	v1.RegisterAttendanceRoutes(authed.Group("/attendance"))
	v1.RegisterStatementRoutes(authed.Group("/giving-statements"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"` // Healthcheck endpoint
	Version string `json:"version" example:"https://example.com/api/version"` // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"` // Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`           // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: c.GetString(string(models.DBContextURL)) + "/healthz",
			Version: c.GetString(string(models.DBContextURL)) + "/version",
			Metrics: c.GetString(string(models.DBContextURL)) + "/metrics",
			V1:      c.GetString(string(models.DBContextURL)) + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealth returns 204 when the API is able to serve requests
//
//	@Summary		Healthcheck
//	@Description	Returns an empty response for healthchecks
//	@Tags			General
//	@Success		204
//	@Router			/healthz [get]
func GetHealth(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Session          string `json:"session" example:"https://example.com/api/v1/session"`                    // URL of the session endpoint
	Church           string `json:"church" example:"https://example.com/api/v1/church"`                      // URL of the church profile endpoint
	Households       string `json:"households" example:"https://example.com/api/v1/households"`              // URL of household list endpoint
	Members          string `json:"members" example:"https://example.com/api/v1/members"`                    // URL of member list endpoint
	GivingCategories string `json:"givingCategories" example:"https://example.com/api/v1/giving-categories"` // URL of giving category list endpoint
	Giving           string `json:"giving" example:"https://example.com/api/v1/giving"`                      // URL of giving record list endpoint
	GivingImport     string `json:"givingImport" example:"https://example.com/api/v1/giving-import"`         // URL of the giving CSV import endpoint
	Services         string `json:"services" example:"https://example.com/api/v1/services"`                  // URL of service list endpoint
	Attendance       string `json:"attendance" example:"https://example.com/api/v1/attendance"`              // URL of attendance record list endpoint
	GivingStatements string `json:"givingStatements" example:"https://example.com/api/v1/giving-statements"` // URL of giving statement list endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Session:          url + "/v1/session",
			Church:           url + "/v1/church",
			Households:       url + "/v1/households",
			Members:          url + "/v1/members",
			GivingCategories: url + "/v1/giving-categories",
			Giving:           url + "/v1/giving",
			GivingImport:     url + "/v1/giving-import",
			Services:         url + "/v1/services",
			Attendance:       url + "/v1/attendance",
			GivingStatements: url + "/v1/giving-statements",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
