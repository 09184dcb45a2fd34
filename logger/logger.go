package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init configures the process-wide logger. Only the first call takes effect.
// Valid levels: debug, info, warn, error, dpanic, panic, fatal
func Init(level string) {
	InitWithWriter(level, os.Stdout)
}

// InitWithWriter is Init with an explicit destination, used by tests and by
// commands that keep stdout for user-facing output.
func InitWithWriter(level string, w io.Writer) {
	once.Do(func() {
		var zapLevel zapcore.Level
		if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
			zapLevel = zap.InfoLevel
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "ts"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
		encoderConfig.FunctionKey = zapcore.OmitKey

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(w),
			zapLevel,
		)

		base = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
		sugar = base.Sugar()
	})
}

// Sugar returns the global sugared logger, initialising it at info level if needed.
func Sugar() *zap.SugaredLogger {
	if sugar == nil {
		Init("info")
	}
	return sugar
}

// With returns a child logger carrying the given key/value pairs, e.g. a request ID.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return Sugar().Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

// Sync flushes any buffered log entries
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

func Debug(args ...interface{}) {
	Sugar().Debug(args...)
}

func Info(args ...interface{}) {
	Sugar().Info(args...)
}

func Warn(args ...interface{}) {
	Sugar().Warn(args...)
}

func Error(args ...interface{}) {
	Sugar().Error(args...)
}

func Debugf(template string, args ...interface{}) {
	Sugar().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	Sugar().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	Sugar().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	Sugar().Errorf(template, args...)
}

// Debugw logs at debug level with structured context.
func Debugw(msg string, keysAndValues ...interface{}) {
	Sugar().Debugw(msg, keysAndValues...)
}

// Infow logs at info level with structured context.
func Infow(msg string, keysAndValues ...interface{}) {
	Sugar().Infow(msg, keysAndValues...)
}

// Warnw logs at warn level with structured context.
func Warnw(msg string, keysAndValues ...interface{}) {
	Sugar().Warnw(msg, keysAndValues...)
}
