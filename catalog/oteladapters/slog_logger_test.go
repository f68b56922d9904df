package oteladapters_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libercore/lending-catalog-go/catalog/oteladapters"
)

func Test_SlogBridgeLogger_ForwardsLevelsAndAttributes(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	// act
	logger.Debug("executed sql", "duration_ms", 1.25)
	logger.Info("borrowed book for user", "book_id", "b-1", "user_id", "u-1")
	logger.Warn("borrower swap hit a concurrency conflict")
	logger.Error("book query execution failed", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "duration_ms=1.25")
	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "book_id=b-1")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, "error=boom")
}

func Test_NewSlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("lending-catalog")

	assert.NotNil(t, logger)
}
