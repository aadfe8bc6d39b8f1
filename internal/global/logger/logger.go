package logger

import "gitlab.com/examproctor-2025.net/internal/adapter/logging"

var Logger = logging.NewZapLogger()

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}

// SetDebug rebuilds the global logger; call it before handing Logger to services
func SetDebug(debug bool) {
	Logger = logging.NewZapLoggerWithLevel(debug)
}
