package log

import (
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// DefaultLogger installs a console-only logger as the process logger.
func DefaultLogger(level zapcore.Level) {
	install(consoleCore(level))
}

// InitLogger installs a process logger that writes to the console and to two
// rotated files: fileName.info.log and fileName.error.log.
func InitLogger(fileName string, maxSize, maxBackups, maxAge int, compress bool) {
	infoLum := &lumberjack.Logger{
		Filename:   fileName + ".info.log",
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBackups,
		MaxAge:     maxAge, // days
		Compress:   compress,
	}
	errorLum := &lumberjack.Logger{
		Filename:   fileName + ".error.log",
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   compress,
	}

	encoder := zapcore.NewConsoleEncoder(encoderConfig())
	install(zapcore.NewTee(
		consoleCore(zapcore.DebugLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(errorLum), zapcore.ErrorLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(infoLum), zapcore.InfoLevel),
	))
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func consoleCore(level zapcore.Level) zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), level)
}

func install(core zapcore.Core) {
	Logger = zap.New(core).WithOptions(zap.AddCaller(), zap.AddCallerSkip(1))
	zap.ReplaceGlobals(Logger)
}

func Infof(template string, args ...interface{}) {
	zap.S().Infof(template, args...)
}

func Errorf(template string, args ...interface{}) {
	zap.S().Errorf(template, args...)
}

func Warnf(template string, args ...interface{}) {
	zap.S().Warnf(template, args...)
}
