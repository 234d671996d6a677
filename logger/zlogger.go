package zlogger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeLayout = "2006-01-02 15:04:05 Z07:00"

var defaultLogLevel = zap.NewAtomicLevelAt(zapcore.DebugLevel)
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.New(consoleCore()).Sugar()
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func consoleCore() zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), defaultLogLevel)
}

// SetLogFile sends logs to a rotating file. With verbose set, console output is kept as well.
func SetLogFile(logFile string, verbose bool) {
	if logFile == "" {
		return
	}
	w := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), defaultLogLevel)

	core := fileCore
	if verbose {
		core = zapcore.NewTee(consoleCore(), fileCore)
	}
	Logger = zap.New(core).Sugar()
}

// SetLevel changes the minimum level for every sink.
func SetLevel(level string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	defaultLogLevel.SetLevel(l)
	return nil
}

func Sync() {
	_ = Logger.Sync()
}
