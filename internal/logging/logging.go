// Package logging provides category-scoped zap loggers for AgriAssist.
// Logs go to per-category files under the config directory so they never
// write to the terminal the TUI owns. When debug mode is off every logger is
// a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names the subsystems that log separately.
type Category string

const (
	CategoryBoot    Category = "boot"    // startup, config, catalog load
	CategorySession Category = "session" // answer/location mutations
	CategoryGeo     Category = "geo"     // location acquisition
	CategorySubmit  Category = "submit"  // analysis service exchange
	CategoryExport  Category = "export"  // document export
)

var (
	mu      sync.Mutex
	enabled bool
	logsDir string
	loggers = map[Category]*zap.Logger{}
)

// Init configures the package. When debug is false all loggers returned by
// Get are no-ops.
func Init(dir string, debug bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = debug
	logsDir = filepath.Join(dir, "logs")
	loggers = map[Category]*zap.Logger{}
}

// Get returns the logger for a category, creating its file on first use.
func Get(cat Category) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return zap.NewNop()
	}
	if l, ok := loggers[cat]; ok {
		return l
	}
	l, err := build(cat)
	if err != nil {
		l = zap.NewNop()
	}
	loggers[cat] = l
	return l
}

func build(cat Category) (*zap.Logger, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	path := filepath.Join(logsDir, string(cat)+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(f),
		zap.DebugLevel,
	)
	return zap.New(core).With(zap.String("cat", string(cat))), nil
}

// Sync flushes all open category loggers. Called on shutdown.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
}
