package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Параметры ротации файла логов
const (
	maxFileSizeMB = 100
	maxBackups    = 5
	maxAgeDays    = 30
)

// Logger логгер сервиса с printf-подобным API
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
	file  *lumberjack.Logger
}

// New создает логгер, который пишет JSON в stdout и, если указан file, в файл с ротацией
// level: "debug", "info", "warn", "error" (по умолчанию "info")
func New(file string, level string) (*Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("logger: invalid level %q: %w", level, err)
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl),
	}

	var rotator *lumberjack.Logger
	if file != "" {
		rotator = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), lvl))
	}

	base := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{
		base:  base,
		sugar: base.Sugar(),
		file:  rotator,
	}, nil
}

// NewNop создает логгер, который ничего не пишет
func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{base: base, sugar: base.Sugar()}
}

// With возвращает логгер с дополнительными полями
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	sugar := l.sugar.With(keysAndValues...)
	return &Logger{base: sugar.Desugar(), sugar: sugar, file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

// Close сбрасывает буферы и закрывает файл логов
func (l *Logger) Close() error {
	// Sync для stdout на некоторых платформах возвращает EINVAL, игнорируем
	_ = l.base.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
