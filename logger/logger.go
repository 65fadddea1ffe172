package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config defines the configuration options for the logger
type Config struct {
	// LogLevel sets the minimum enabled logging level. Valid levels are
	// "debug", "info", "warn", and "error".
	LogLevel string

	// LogFileSize is the maximum size in megabytes of the log file before it gets
	// rotated. It defaults to 10 megabytes.
	LogFileSize int

	// LogFileCount is the maximum number of old log files to retain.
	// The default is 5.
	LogFileCount uint8

	// LogCompress determines if the rotated log files should be compressed
	// using gzip. The default is false.
	LogCompress bool

	// LogColorize enables output with colors
	LogColorize bool

	// TimeFormat sets the format for timestamp in logs. Valid formats are
	// "rfc3339", "iso8601", etc. The default is RFC3339.
	TimeFormat string

	// LogToFileOnly disables logging to stdout.
	// If true, logs will only be written to the file and not also stdout.
	LogToFileOnly bool
}

const logfile = "./logs/autonuoma.log"

var (
	log        zerolog.Logger
	timeFormat = time.RFC3339Nano
)

// InitLogger initializes the global logger based on the provided Config.
// It sets the log level, output format, rotation options, etc.
func InitLogger(config Config) {
	if config.LogFileSize == 0 {
		config.LogFileSize = 10
	}
	if config.LogFileCount == 0 {
		config.LogFileCount = 5
	}
	switch config.TimeFormat {
	case "rfc3339", "":
		timeFormat = time.RFC3339Nano
	case "iso8601":
		timeFormat = "2006-01-02T15:04:05.000Z0700"
	case "rfc1123":
		timeFormat = time.RFC1123
	case "rfc822":
		timeFormat = time.RFC822
	default:
		timeFormat = config.TimeFormat
	}

	level := zerolog.InfoLevel
	switch strings.ToLower(config.LogLevel) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	rotator := &lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    config.LogFileSize,
		MaxBackups: int(config.LogFileCount),
		Compress:   config.LogCompress,
	}

	var writer io.Writer = rotator
	if !config.LogToFileOnly {
		console := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: timeFormat,
			NoColor:    !config.LogColorize,
		}
		writer = zerolog.MultiLevelWriter(rotator, console)
	}

	zerolog.TimeFieldFormat = timeFormat
	log = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Logtype returns a zerolog event of the given level on the global logger.
// Unknown levels log at info.
func Logtype(typ string) *zerolog.Event {
	switch typ {
	case "debug":
		return log.Debug()
	case "warn":
		return log.Warn()
	case "error":
		return log.Error()
	case "fatal":
		return log.Fatal()
	default:
		return log.Info()
	}
}

// GetLogger returns the global logger instance.
func GetLogger() *zerolog.Logger {
	return &log
}
