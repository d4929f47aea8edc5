package log

import (
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	flagLevel        = "log-level"
	flagFormat       = "log-format"
	flagDisableColor = "disable-log-color"

	formatJSON = "json"
)

var (
	logger atomic.Pointer[zerolog.Logger]

	// concurrency-safe counter for the deduped helpers
	ctr = newCounter()
)

// InitLogging configures the global logger from viper: log-level, log-format (pretty or
// json) and disable-log-color. It should be called once the command line has been parsed
// so flags and env vars are both visible.
func InitLogging(showLogLevelSetMessage bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var l zerolog.Logger
	if strings.EqualFold(viper.GetString(flagFormat), formatJSON) {
		l = zerolog.New(os.Stderr)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    viper.GetBool(flagDisableColor),
		})
	}
	l = l.With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(flagLevel)))
	if err != nil || level == zerolog.NoLevel {
		l.Warn().Msgf("Unrecognized log level %q, defaulting to info", viper.GetString(flagLevel))
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	SetLogger(&l)

	if showLogLevelSetMessage {
		Infof("Log level set to %s", level)
	}
}

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger.Store(&l)
}

// GetLogger returns the global logger. The returned logger is never modified, a later
// SetLogger swaps in a different one.
func GetLogger() *zerolog.Logger {
	return logger.Load()
}

// SetLogger replaces the global logger with a copy of l.
func SetLogger(l *zerolog.Logger) {
	if l == nil {
		return
	}

	next := *l
	logger.Store(&next)
}

func Errorf(format string, a ...interface{}) {
	GetLogger().Error().Msgf(format, a...)
}

func Warnf(format string, a ...interface{}) {
	GetLogger().Warn().Msgf(format, a...)
}

func DedupedWarningf(logTypeLimit int, format string, a ...interface{}) {
	deduped(logTypeLimit, format, Warnf, a...)
}

func Infof(format string, a ...interface{}) {
	GetLogger().Info().Msgf(format, a...)
}

func Debugf(format string, a ...interface{}) {
	GetLogger().Debug().Msgf(format, a...)
}

func Tracef(format string, a ...interface{}) {
	GetLogger().Trace().Msgf(format, a...)
}

// Profile logs the time elapsed since start at debug level.
func Profile(start time.Time, name string) {
	GetLogger().Debug().Str("elapsed", time.Since(start).String()).Msgf("[Profiler] %s", name)
}

func deduped(logTypeLimit int, format string, logf func(string, ...interface{}), a ...interface{}) {
	timesLogged := ctr.increment(format)

	if timesLogged < logTypeLimit {
		logf(format, a...)
	} else if timesLogged == logTypeLimit {
		logf(format, a...)
		Infof("%s logged %d times: suppressing future logs", format, logTypeLimit)
	}
}
