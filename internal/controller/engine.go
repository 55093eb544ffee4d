package controller

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/qbank/internal/apperror"
	"github.com/lshigami/qbank/internal/dto"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

type EngineOptions struct {
	Release      bool
	AllowOrigins []string
	// ExposeErrorDetail adds the internal error text to 500 responses.
	ExposeErrorDetail bool
}

// NewGinEngine builds the engine with logging, recovery, CORS and the error
// boundary installed. Routes are registered separately.
func NewGinEngine(opts EngineOptions) *gin.Engine {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(RequestLogger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, failure("internal server error", ""))
	}))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(opts.AllowOrigins) == 0 || (len(opts.AllowOrigins) == 1 && opts.AllowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.Use(ErrorHandler(opts.ExposeErrorDetail))
	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("route %s not found", c.Request.URL.Path))
	})
	return r
}

// RequestLogger tags each request with an id and logs it once on completion.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		event := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("user_agent", c.Request.UserAgent()).
			Str("error_message", c.Errors.ByType(gin.ErrorTypePrivate).String()).
			Msg("gin_request")
	}
}

// ErrorHandler is the single place where errors become responses. Handlers
// only call c.Error and return.
func ErrorHandler(exposeDetail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		appErr := apperror.From(err)

		detail := ""
		if !appErr.Operational() {
			log.Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Interface("request_id", c.Value("request_id")).
				Msg("Unhandled error")
			if exposeDetail {
				detail = err.Error()
			}
		}
		c.JSON(appErr.Status, failure(appErr.Message, detail))
	}
}

func failure(message, detail string) dto.Envelope {
	return dto.Envelope{
		Success:   false,
		Error:     &dto.ErrorBody{Message: message, Detail: detail},
		Timestamp: time.Now().UTC(),
	}
}
