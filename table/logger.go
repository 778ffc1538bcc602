package table

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the table package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger configures the table package's logger. A nil logger restores the
// no-op default. Tables created afterwards without their own logger use it.
// Safe for concurrent use with Logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
