package auth

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the minimal logging contract the package depends on. Callers can
// satisfy it with their own logger or use NewZapLogger.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger to the package Logger interface.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapLogger{sugar: l.Sugar()}
}

func (z *zapLogger) Debug(format string, args ...any) { z.sugar.Debugf(format, args...) }
func (z *zapLogger) Info(format string, args ...any)  { z.sugar.Infof(format, args...) }
func (z *zapLogger) Warn(format string, args ...any)  { z.sugar.Warnf(format, args...) }
func (z *zapLogger) Error(format string, args ...any) { z.sugar.Errorf(format, args...) }
