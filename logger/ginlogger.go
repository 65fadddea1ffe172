package logger

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Options struct {
	//
	Name string

	// Custom logger
	Logger *zerolog.Logger

	// FieldsExclude defines contextual fields to not display in output.
	FieldsExclude []string
}

var (
	NameFieldName       = "name"
	HostnameFieldName   = "hostname"
	ClientIPFieldName   = "client_ip"
	UserAgentFieldName  = "user_agent"
	DurationFieldName   = "elapsed_ms"
	MethodFieldName     = "method"
	PathFieldName       = "path"
	statusCodeFieldName = "status_code"
	DataLengthFieldName = "data_length"
)

// GinLogger is a gin middleware which uses zerolog.
func GinLogger() gin.HandlerFunc {
	return LoggerWithOptions(&Options{})
}

// LoggerWithOptions is a gin middleware which uses zerolog.
func LoggerWithOptions(opt *Options) gin.HandlerFunc {
	// Logger to use
	if opt.Logger == nil {
		opt.Logger = &log
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return func(ctx *gin.Context) {
		z := opt.Logger

		// return if zerolog is disabled
		if z.GetLevel() == zerolog.Disabled {
			ctx.Next()
			return
		}

		begin := time.Now()
		path := ctx.Request.URL.Path
		raw := ctx.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		// executes the pending handlers
		ctx.Next()

		duration := time.Since(begin)
		statusCode := ctx.Writer.Status()

		var event *zerolog.Event
		switch {
		case statusCode >= 500:
			event = z.Error()
		case statusCode >= 400:
			event = z.Warn()
		default:
			event = z.Info()
		}

		if len(opt.Name) > 0 && !opt.isExcluded(NameFieldName) {
			event.Str(NameFieldName, opt.Name)
		}
		if !opt.isExcluded(HostnameFieldName) {
			event.Str(HostnameFieldName, hostname)
		}
		if !opt.isExcluded(ClientIPFieldName) {
			event.Str(ClientIPFieldName, ctx.ClientIP())
		}
		if !opt.isExcluded(UserAgentFieldName) && len(ctx.Request.UserAgent()) > 0 {
			event.Str(UserAgentFieldName, ctx.Request.UserAgent())
		}
		if !opt.isExcluded(MethodFieldName) {
			event.Str(MethodFieldName, ctx.Request.Method)
		}
		if !opt.isExcluded(PathFieldName) {
			event.Str(PathFieldName, path)
		}
		if !opt.isExcluded(DurationFieldName) {
			event.Dur(DurationFieldName, duration)
		}
		if !opt.isExcluded(statusCodeFieldName) {
			event.Int(statusCodeFieldName, statusCode)
		}
		if !opt.isExcluded(DataLengthFieldName) && ctx.Writer.Size() > 0 {
			event.Int(DataLengthFieldName, ctx.Writer.Size())
		}

		message := ctx.Errors.String()
		if message == "" {
			message = "Request"
		}
		event.Msg(message)
	}
}

// isExcluded checks if a field is excluded from the output.
func (o *Options) isExcluded(field string) bool {
	for _, f := range o.FieldsExclude {
		if f == field {
			return true
		}
	}
	return false
}
