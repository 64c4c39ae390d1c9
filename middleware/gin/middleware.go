package ginmw

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	regcheck "github.com/reoring/regcheck"
	"github.com/reoring/regcheck/i18n"
	"github.com/reoring/regcheck/internal/logger"
	"github.com/reoring/regcheck/internal/metrics"
	"github.com/reoring/regcheck/middleware"
)

// RequestIDHeader is the HTTP header used for request tracing.
const RequestIDHeader = "X-Request-ID"

// Keys stored in the gin context by ValidateRegistration and RequestID.
const (
	RequestIDKey = "request_id"
	outcomeKey   = "regcheck.outcome"
	reportKey    = "regcheck.report"
	elapsedKey   = "regcheck.elapsed"
)

const mimeYAML = "application/yaml; charset=utf-8"

// RequestID reuses an incoming X-Request-ID or generates one, and exposes it
// to the gin context, the request context and the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = logger.GenerateRequestID()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.NewRequestIDContext(c.Request.Context(), id))
		c.Next()
	}
}

// GetRequestID returns the request ID or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// ValidateRegistration parses the request body as a registration payload
// (format from Content-Type) and stores the accepted User in the request
// context. Rejected payloads abort with the localized report. fallback is
// used when the request has no Accept-Language header.
func ValidateRegistration(opt regcheck.ParseOpt, fallback i18n.Translator) gin.HandlerFunc {
	if fallback == nil {
		fallback = i18n.English()
	}
	return func(c *gin.Context) {
		start := time.Now()
		u, err := regcheck.ParseFrom(regcheck.SourceFor(c.ContentType(), c.Request.Body), opt)
		c.Set(elapsedKey, time.Since(start))
		if err != nil {
			tr := fallback
			if al := c.GetHeader("Accept-Language"); al != "" {
				tr = i18n.For(al)
			}
			rep := regcheck.ReportOf(err).Localize(tr)
			c.Set(outcomeKey, string(rep.Kind))
			c.Set(reportKey, rep)
			c.Header("Content-Language", tr.Lang())
			logger.Log(c.Request.Context()).Debug(c.Request.Context(), "registration rejected",
				zap.String(logger.Outcome, string(rep.Kind)),
				zap.Strings("fields", rep.Fields()),
			)
			respond(c, middleware.StatusFor(rep), middleware.ErrorPayload(rep, GetRequestID(c)))
			c.Abort()
			return
		}
		c.Set(outcomeKey, metrics.OutcomeAccepted)
		c.Request = c.Request.WithContext(middleware.ContextWithUser(c.Request.Context(), u))
		c.Next()
	}
}

// GetUser fetches the accepted User from gin.Context.
func GetUser(c *gin.Context) (regcheck.User, bool) {
	return middleware.UserFromContext(c.Request.Context())
}

// Register writes the canonical form of the accepted User.
func Register(c *gin.Context) {
	u, ok := GetUser(c)
	if !ok {
		logger.Log(c.Request.Context()).Error(c.Request.Context(), "register called without ValidateRegistration")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "no validated registration in context"})
		return
	}
	var (
		out []byte
		err error
		ct  = gin.MIMEJSON + "; charset=utf-8"
	)
	if responseFormat(c.GetHeader("Accept")) == regcheck.FormatYAML {
		out, err = regcheck.CanonicalYAML(u)
		ct = mimeYAML
	} else {
		out, err = regcheck.Canonical(u)
	}
	if err != nil {
		_ = c.Error(err)
		logger.Log(c.Request.Context()).Error(c.Request.Context(), "encode registration", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "encode registration"})
		return
	}
	c.Data(http.StatusOK, ct, out)
}

func respond(c *gin.Context, status int, body any) {
	if responseFormat(c.GetHeader("Accept")) == regcheck.FormatYAML {
		out, err := yaml.Marshal(body)
		if err == nil {
			c.Data(status, mimeYAML, out)
			return
		}
	}
	c.JSON(status, body)
}

// responseFormat picks YAML only when a YAML media type is listed before any
// JSON one.
func responseFormat(accept string) regcheck.Format {
	for _, part := range strings.Split(accept, ",") {
		mt := strings.TrimSpace(part)
		if mt == "" {
			continue
		}
		if regcheck.FormatForMediaType(mt) == regcheck.FormatYAML {
			return regcheck.FormatYAML
		}
		if strings.HasPrefix(mt, gin.MIMEJSON) || strings.Contains(mt, "+json") {
			return regcheck.FormatJSON
		}
	}
	return regcheck.FormatJSON
}

// Logging emits one line per request with the validation outcome. It also
// stores log in the request context for the handlers behind it.
func Logging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), log))
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if outcome := c.GetString(outcomeKey); outcome != "" {
			fields = append(fields, zap.String(logger.Outcome, outcome))
		}
		if v, ok := c.Get(reportKey); ok {
			rep := v.(regcheck.Report)
			fields = append(fields, zap.Int("violations", len(rep.Violations)), zap.Strings("fields", rep.Fields()))
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Error(ctx, "request", fields...)
		case status >= 400:
			log.Warn(ctx, "request", fields...)
		default:
			log.Info(ctx, "request", fields...)
		}
	}
}

// Metrics records the outcome of every validated request.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		outcome := c.GetString(outcomeKey)
		if outcome == "" {
			return
		}
		elapsed := c.GetDuration(elapsedKey)
		if outcome == metrics.OutcomeAccepted {
			m.ObserveAccepted(elapsed)
			return
		}
		var codes []string
		if v, ok := c.Get(reportKey); ok {
			for _, vi := range v.(regcheck.Report).Violations {
				codes = append(codes, vi.Code)
			}
		}
		m.ObserveRejected(outcome, codes, elapsed)
	}
}

// Recovery turns panics into a 500 response and logs the stack with the
// request logger. Register it after Logging so panics still get a request
// line.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := c.Request.Context()
				logger.Log(ctx).Error(ctx, "panic recovered",
					zap.Any("error", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "an unexpected error occurred",
					"request_id": GetRequestID(c),
				})
			}
		}()
		c.Next()
	}
}
