// Package ginmw is the gin transport for registration validation.
package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	regcheck "github.com/reoring/regcheck"
	"github.com/reoring/regcheck/i18n"
	"github.com/reoring/regcheck/internal/logger"
	"github.com/reoring/regcheck/internal/metrics"
)

// Deps wires the router. Zero values get sensible defaults.
type Deps struct {
	Log        *logger.Logger
	Metrics    *metrics.Metrics
	Opt        *regcheck.ParseOpt
	Translator i18n.Translator
}

// NewRouter builds the HTTP surface:
//
//	POST /v1/registrations         validate and echo the canonical form
//	GET  /v1/registrations/schema  JSON Schema of the payload
//	GET  /healthz                  liveness
//	GET  /metrics                  Prometheus exposition
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	opt := regcheck.DefaultParseOpt()
	if d.Opt != nil {
		opt = *d.Opt
	}

	r := gin.New()
	r.Use(RequestID(), Logging(d.Log), Metrics(d.Metrics), Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/registrations", ValidateRegistration(opt, d.Translator), Register)
	v1.GET("/registrations/schema", func(c *gin.Context) {
		c.JSON(http.StatusOK, regcheck.JSONSchema())
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "request_id": GetRequestID(c)})
	})
	return r
}
