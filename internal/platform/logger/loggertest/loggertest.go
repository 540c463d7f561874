// Package loggertest provides loggers that record entries in memory.
package loggertest

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"portfolio-site/internal/platform/logger"
)

// NewObserved returns a debug-level logger and the entries it records.
func NewObserved() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}
