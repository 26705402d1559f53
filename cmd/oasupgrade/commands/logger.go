package commands

import (
	"github.com/erraggy/oasupgrade/upgrader"
	"go.uber.org/zap"
)

// zapLogger adapts a zap logger to upgrader.Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newZapLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{sugar: l.Sugar()}
}

func (z *zapLogger) Debug(msg string, attrs ...any) { z.sugar.Debugw(msg, attrs...) }
func (z *zapLogger) Info(msg string, attrs ...any)  { z.sugar.Infow(msg, attrs...) }
func (z *zapLogger) Warn(msg string, attrs ...any)  { z.sugar.Warnw(msg, attrs...) }
func (z *zapLogger) Error(msg string, attrs ...any) { z.sugar.Errorw(msg, attrs...) }

func (z *zapLogger) With(attrs ...any) upgrader.Logger {
	return &zapLogger{sugar: z.sugar.With(attrs...)}
}

var _ upgrader.Logger = (*zapLogger)(nil)
