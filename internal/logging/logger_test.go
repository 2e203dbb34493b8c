package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"harmonic/internal/config"
)

func resetLogging(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetLogger(nil) })
}

func TestGet_NoopByDefault(t *testing.T) {
	resetLogging(t)
	SetLogger(nil)

	assert.False(t, IsDebugMode())
	for _, cat := range AllCategories() {
		assert.False(t, IsCategoryEnabled(cat))
		// Must not panic.
		Get(cat).Info("hello %s", "world")
	}
}

func TestSetLogger_RoutesCategories(t *testing.T) {
	resetLogging(t)
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	RegistryDebug("Registered pattern: %s", "vortex")
	Get(CategoryGrid).Info("grid %dx%d", 3, 4)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "Registered pattern: vortex", entries[0].Message)
	assert.Equal(t, "registry", entries[0].LoggerName)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "grid 3x4", entries[1].Message)
	assert.Equal(t, "grid", entries[1].LoggerName)
}

func TestInitialize_CategoryFilter(t *testing.T) {
	resetLogging(t)
	var buf bytes.Buffer
	err := Initialize(config.LoggingConfig{
		Level:      "debug",
		Format:     "json",
		DebugMode:  true,
		Categories: map[string]bool{"grid": false},
	}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	assert.False(t, IsCategoryEnabled(CategoryGrid))
	assert.True(t, IsCategoryEnabled(CategoryOverlay), "unlisted categories default to enabled")

	GridDebug("hidden line")
	OverlayDebug("visible line")
	require.NoError(t, Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden line")
	assert.Contains(t, out, "visible line")
	assert.Contains(t, out, `"logger":"overlay"`)
}

func TestInitialize_DisabledIsSilent(t *testing.T) {
	resetLogging(t)
	var buf bytes.Buffer
	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug"}, zapcore.AddSync(&buf)))

	Get(CategoryBoot).Error("should not appear")
	assert.Empty(t, buf.String())
}

func TestInitialize_LevelFilters(t *testing.T) {
	resetLogging(t)
	var buf bytes.Buffer
	require.NoError(t, Initialize(config.LoggingConfig{Level: "warn", DebugMode: true}, zapcore.AddSync(&buf)))

	Get(CategoryEngine).Info("info line")
	Get(CategoryEngine).Warn("warn line")

	out := buf.String()
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
}

func TestInitialize_InvalidOptions(t *testing.T) {
	resetLogging(t)
	assert.Error(t, Initialize(config.LoggingConfig{DebugMode: true, Level: "loud"}, nil))
	assert.Error(t, Initialize(config.LoggingConfig{DebugMode: true, Format: "xml"}, nil))
}

func TestLogger_With(t *testing.T) {
	resetLogging(t)
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	Get(CategoryMatcher).With("digits", 5).Info("matched %d", 2)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "matched 2", entry.Message)
	assert.Equal(t, int64(5), entry.ContextMap()["digits"])
}

func TestInitialize_FromDefaultConfig(t *testing.T) {
	resetLogging(t)
	var buf bytes.Buffer
	cfg := config.DefaultConfig().Logging
	cfg.DebugMode = true
	cfg.Categories = map[string]bool{"reducer": false}
	require.NoError(t, Initialize(cfg, zapcore.AddSync(&buf)))

	assert.Equal(t, cfg.IsCategoryEnabled("reducer"), IsCategoryEnabled(CategoryReducer))
	assert.Equal(t, cfg.IsCategoryEnabled("cli"), IsCategoryEnabled(CategoryCLI))

	Registry("catalog loaded")
	Get(CategoryReducer).Info("suppressed reducer line")
	require.NoError(t, Sync())
	assert.Contains(t, buf.String(), "catalog loaded")
	assert.NotContains(t, buf.String(), "suppressed reducer line")
}

func TestTimer(t *testing.T) {
	resetLogging(t)
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	timer := StartTimer(CategoryGrid, "Generate")
	elapsed := timer.Stop()
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))

	timer = StartTimer(CategoryGrid, "GenerateAll")
	time.Sleep(2 * time.Millisecond)
	timer.StopWithThreshold(time.Nanosecond)

	require.Equal(t, 2, logs.Len())
	assert.True(t, strings.HasPrefix(logs.All()[0].Message, "Generate completed in"))
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestGet_Concurrent(t *testing.T) {
	resetLogging(t)
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cat := AllCategories()[i%len(AllCategories())]
			Get(cat).Info("message %d", i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, logs.Len())
}
