// Package log is the process logger shared by the verifier and its CLI.
package log

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Environment variables read by InitFromEnv.
const (
	EnvLevel  = "WALLET_VERIFY_LOG"
	EnvFormat = "WALLET_VERIFY_LOG_FORMAT"
)

const (
	defaultLevel  = "warn"
	defaultFormat = "simple"
)

var (
	rootLogger = logrus.NewEntry(logrus.StandardLogger())

	// L accesses the current logger from the context
	L = loggerFromContext

	initAtLeastOnce atomic.Bool
)

type ctxLogKey struct{}

// Config selects level and output format.
type Config struct {
	Level        string
	Format       string // simple or json
	DisableColor bool
}

// InitConfig applies conf to the process logger. Logs go to stderr so they
// never mix with a verification report on stdout.
func InitConfig(conf *Config) {
	initAtLeastOnce.Store(true)

	level := conf.Level
	if level == "" {
		level = defaultLevel
	}
	SetLevel(level)
	logrus.SetOutput(os.Stderr)

	format := conf.Format
	if format == "" {
		format = defaultFormat
	}
	setFormatting(format, conf.DisableColor)
}

// InitFromEnv configures the logger from WALLET_VERIFY_LOG and
// WALLET_VERIFY_LOG_FORMAT.
func InitFromEnv() {
	InitConfig(&Config{
		Level:  os.Getenv(EnvLevel),
		Format: os.Getenv(EnvFormat),
	})
}

// EnsureInit applies the default configuration unless InitConfig already ran.
func EnsureInit() {
	if !initAtLeastOnce.Load() {
		InitConfig(&Config{})
	}
}

// IsDebugEnabled reports whether debug output is on, for callers that want to
// skip building expensive debug values.
func IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

// WithLogger adds the specified logger to the context
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	EnsureInit()
	return context.WithValue(ctx, ctxLogKey{}, logger)
}

// WithLogField adds the specified field to the logger in the context
func WithLogField(ctx context.Context, key, value string) context.Context {
	EnsureInit()
	if len(value) > 61 {
		value = value[0:61] + "..."
	}
	return WithLogger(ctx, loggerFromContext(ctx).WithField(key, value))
}

func loggerFromContext(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		EnsureInit()
		return rootLogger
	}
	logger := ctx.Value(ctxLogKey{})
	if logger == nil {
		EnsureInit()
		return rootLogger
	}
	return logger.(*logrus.Entry)
}

func SetLevel(level string) {
	var l logrus.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		l = logrus.ErrorLevel
	case "warn", "warning":
		l = logrus.WarnLevel
	case "debug":
		l = logrus.DebugLevel
	case "trace":
		l = logrus.TraceLevel
	case "info":
		l = logrus.InfoLevel
	default:
		l = logrus.WarnLevel
	}
	logrus.SetLevel(l)
}

func setFormatting(format string, disableColor bool) {
	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		formatter = &prefixed.TextFormatter{
			DisableColors:   disableColor,
			DisableSorting:  false,
			ForceFormatting: true,
			FullTimestamp:   true,
		}
	}
	logrus.SetFormatter(formatter)
}
