// Package log holds the logger shared by the zkhash packages.
package log

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// Set replaces the package logger.
func Set(l zerolog.Logger) {
	logger.Store(&l)
}

// Logger returns the current logger.
func Logger() *zerolog.Logger {
	return logger.Load()
}
