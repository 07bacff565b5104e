package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger instance with debug mode support
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	InitLoggerWithFormat(logLevel, logFile, FormatText, debugToConsole)
}

// InitLoggerWithFormat initializes the global logger with an explicit file format
func InitLoggerWithFormat(logLevel, logFile string, format LogFormat, debugToConsole bool) {
	loggerOnce.Do(func() {
		logger, err := NewLoggerWithOptions(LoggerOptions{
			Level:          logLevel,
			File:           logFile,
			Format:         format,
			DebugToConsole: debugToConsole,
		})
		if err != nil {
			panic(err.Error())
		}
		globalLogger = logger
	})
}

// SetLogger replaces the global logger. Tests use it to capture output.
func SetLogger(logger LoggerInterface) {
	globalLogger = logger
}

// Named returns a logger tagged with a component name. Before InitLogger has
// run it returns a logger without outputs.
func Named(component string) LoggerInterface {
	if globalLogger == nil {
		return NewDiscardLogger().With(Field{Key: "component", Value: component})
	}
	return globalLogger.With(Field{Key: "component", Value: component})
}

func LogInfo(msg string) {
	if globalLogger != nil {
		globalLogger.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogDebug(msg string) {
	if globalLogger != nil {
		globalLogger.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogWarn(msg string) {
	if globalLogger != nil {
		globalLogger.Warn(msg)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warnf(format, args...)
	}
}

func LogError(msg string) {
	if globalLogger != nil {
		globalLogger.Error(msg)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	}
}
