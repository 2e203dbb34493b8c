// Package logging provides config-driven categorized logging for harmonic.
// Each category is a named zap logger ("registry", "grid", ...) under one
// shared core. Logging is controlled by debug_mode in the config - when
// false, every category is a no-op.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"harmonic/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup, config loading
	CategoryReducer    Category = "reducer"    // Digit reduction
	CategoryRegistry   Category = "registry"   // Pattern registration
	CategoryMatcher    Category = "matcher"    // Pattern matching
	CategoryGrid       Category = "grid"       // Grid generation
	CategoryOverlay    Category = "overlay"    // Grid overlay
	CategoryAttributes Category = "attributes" // Attribute mapping
	CategoryEngine     Category = "engine"     // Engine facade
	CategoryCLI        Category = "cli"        // Command line
)

// AllCategories returns every defined category.
func AllCategories() []Category {
	return []Category{
		CategoryBoot,
		CategoryReducer,
		CategoryRegistry,
		CategoryMatcher,
		CategoryGrid,
		CategoryOverlay,
		CategoryAttributes,
		CategoryEngine,
		CategoryCLI,
	}
}

// Logger wraps a sugared zap logger for one category.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	current config.LoggingConfig
	loggers = make(map[Category]*Logger)
)

// Initialize builds the shared zap core from cfg, writing to sink (stderr
// when nil). With DebugMode false it installs a no-op logger and returns nil.
func Initialize(cfg config.LoggingConfig, sink zapcore.WriteSyncer) error {
	if !cfg.DebugMode {
		install(zap.NewNop(), config.LoggingConfig{})
		return nil
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "", "text":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if sink == nil {
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(level))
	install(zap.New(core), cfg)

	boot := Get(CategoryBoot)
	boot.Info("=== harmonic logging initialized ===")
	boot.Debug("Log level: %s, format: %s", level, cfg.Format)
	if len(cfg.Categories) > 0 {
		enabled := 0
		for _, on := range cfg.Categories {
			if on {
				enabled++
			}
		}
		boot.Debug("Enabled categories: %d/%d", enabled, len(cfg.Categories))
	}
	return nil
}

// SetLogger routes every category to l. Passing nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		install(zap.NewNop(), config.LoggingConfig{})
		return
	}
	install(l, config.LoggingConfig{DebugMode: true})
}

func install(l *zap.Logger, cfg config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	current = cfg
	loggers = make(map[Category]*Logger)
}

// IsDebugMode returns whether logging is enabled at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return current.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return current.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode or the category is disabled.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	zl := zap.NewNop()
	if current.IsCategoryEnabled(string(category)) {
		zl = base.Named(string(category))
	}
	l := &Logger{category: category, sugar: zl.Sugar()}
	loggers[category] = l
	return l
}

// Sync flushes the shared core.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// Category returns the logger's category.
func (l *Logger) Category() Category {
	return l.category
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a child logger carrying structured key/value context.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// Registry logs to the registry category
func Registry(format string, args ...interface{}) {
	Get(CategoryRegistry).Info(format, args...)
}

// RegistryDebug logs debug to the registry category
func RegistryDebug(format string, args ...interface{}) {
	Get(CategoryRegistry).Debug(format, args...)
}

// GridDebug logs debug to the grid category
func GridDebug(format string, args ...interface{}) {
	Get(CategoryGrid).Debug(format, args...)
}

// OverlayDebug logs debug to the overlay category
func OverlayDebug(format string, args ...interface{}) {
	Get(CategoryOverlay).Debug(format, args...)
}

// EngineDebug logs debug to the engine category
func EngineDebug(format string, args ...interface{}) {
	Get(CategoryEngine).Debug(format, args...)
}

// =============================================================================
// TIMING HELPERS - For performance logging
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
