package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type ctxKey struct{}

var (
	global   = zap.NewNop().Sugar()
	globalMx sync.RWMutex
)

// Init replaces the package logger. mode is "prod"/"production" for JSON
// output, anything else builds a development logger.
func Init(mode string) error {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	Set(l.Sugar())
	return nil
}

func Set(l *zap.SugaredLogger) {
	globalMx.Lock()
	defer globalMx.Unlock()
	global = l
}

func Sync() {
	_ = get().Sync()
}

// WithFields returns a context whose log lines carry the given key/value pairs.
func WithFields(ctx context.Context, keysAndValues ...interface{}) context.Context {
	prev, _ := ctx.Value(ctxKey{}).([]interface{})
	fields := make([]interface{}, 0, len(prev)+len(keysAndValues))
	fields = append(fields, prev...)
	fields = append(fields, keysAndValues...)
	return context.WithValue(ctx, ctxKey{}, fields)
}

func get() *zap.SugaredLogger {
	globalMx.RLock()
	defer globalMx.RUnlock()
	return global
}

func from(ctx context.Context) *zap.SugaredLogger {
	l := get()
	if ctx == nil {
		return l
	}
	if fields, ok := ctx.Value(ctxKey{}).([]interface{}); ok && len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

func Debugf(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Debugf(template, args...)
}

func Info(ctx context.Context, args ...interface{}) {
	from(ctx).Info(args...)
}

func Infof(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Infof(template, args...)
}

func Warn(ctx context.Context, args ...interface{}) {
	from(ctx).Warn(args...)
}

func Warnf(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Warnf(template, args...)
}

func Error(ctx context.Context, args ...interface{}) {
	from(ctx).Error(args...)
}

func Errorf(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Errorf(template, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	from(ctx).Fatal(args...)
}
