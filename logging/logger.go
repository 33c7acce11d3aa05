package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging capabilities for the canon engine.
type Logger struct {
	*slog.Logger
	level slog.Level
}

// LogLevel represents different logging levels.
type LogLevel int

const (
	// LevelDebug provides detailed debugging information.
	LevelDebug LogLevel = iota
	// LevelInfo provides general informational messages.
	LevelInfo
	// LevelWarn provides warning messages for potentially problematic situations.
	LevelWarn
	// LevelError provides error messages for serious problems.
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ToSlogLevel converts LogLevel to slog.Level.
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerConfig holds configuration for logger creation.
type LoggerConfig struct {
	// Level sets the minimum log level.
	Level LogLevel
	// Format specifies the output format ("json" or "text").
	Format string
	// Output specifies the output destination.
	Output io.Writer
	// IncludeSource adds source code information to log entries.
	IncludeSource bool
	// Component identifies the logging component.
	Component string
}

// NewLogger creates a new structured logger with the specified configuration.
func NewLogger(config LoggerConfig) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	if config.Format == "" {
		config.Format = "text"
	}

	if config.Component == "" {
		config.Component = "canon-engine"
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.IncludeSource,
	}

	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	// Add component context to all log entries
	logger := slog.New(handler).With("component", config.Component)

	return &Logger{
		Logger: logger,
		level:  config.Level.ToSlogLevel(),
	}
}

// NewDefaultLogger creates a logger with sensible defaults.
func NewDefaultLogger() *Logger {
	return NewLogger(LoggerConfig{
		Level:         LevelInfo,
		Format:        "text",
		Output:        os.Stdout,
		IncludeSource: false,
		Component:     "canon-engine",
	})
}

// NewJSONLogger creates a logger that outputs JSON format.
func NewJSONLogger(level LogLevel) *Logger {
	return NewLogger(LoggerConfig{
		Level:         level,
		Format:        "json",
		Output:        os.Stdout,
		IncludeSource: false,
		Component:     "canon-engine",
	})
}

// NewDebugLogger creates a logger with debug level and source information.
func NewDebugLogger() *Logger {
	return NewLogger(LoggerConfig{
		Level:         LevelDebug,
		Format:        "text",
		Output:        os.Stdout,
		IncludeSource: true,
		Component:     "canon-engine",
	})
}

// WithContext returns a logger with context values.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{
		l.With("context", ctx.Value("request_id")),
		l.level,
	}
}

// WithTable returns a logger with canonical table context.
func (l *Logger) WithTable(table string) *Logger {
	return &Logger{
		l.With("table", table),
		l.level,
	}
}

// WithDay returns a logger with person-day context.
func (l *Logger) WithDay(personID, dayNum int64) *Logger {
	return &Logger{
		l.With(
			"person_id", personID,
			"day_num", dayNum,
		),
		l.level,
	}
}

// WithRule returns a logger with validation rule context.
func (l *Logger) WithRule(ruleCode, table string) *Logger {
	return &Logger{
		l.With(
			"rule_code", ruleCode,
			"table", table,
		),
		l.level,
	}
}

// WithError returns a logger with error context.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		l.With("error", err.Error()),
		l.level,
	}
}

// WithDuration returns a logger with duration context.
func (l *Logger) WithDuration(operation string, duration time.Duration) *Logger {
	return &Logger{
		l.With(
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
		),
		l.level,
	}
}

// WithMetrics returns a logger with pipeline throughput metrics.
func (l *Logger) WithMetrics(rowsProcessed, issuesFound int, processingTime time.Duration) *Logger {
	return &Logger{
		l.With(
			"rows_processed", rowsProcessed,
			"issues_found", issuesFound,
			"processing_time_ms", processingTime.Milliseconds(),
		),
		l.level,
	}
}

// ValidationStart logs the start of a validation run over the canonical
// container.
func (l *Logger) ValidationStart(datasetLabel string) {
	l.Info("starting validation",
		"dataset", datasetLabel,
		"timestamp", time.Now().Format(time.RFC3339),
	)
}

// ValidationComplete logs the completion of a validation run.
func (l *Logger) ValidationComplete(datasetLabel string, duration time.Duration, issuesFound int, hasError bool) {
	l.Info("validation completed",
		"dataset", datasetLabel,
		"duration_ms", duration.Milliseconds(),
		"issues_found", issuesFound,
		"has_error", hasError,
		"timestamp", time.Now().Format(time.RFC3339),
	)
}

// ValidationError logs a validation error encountered while processing a
// table.
func (l *Logger) ValidationError(table string, err error) {
	l.Error("validation error",
		"table", table,
		"error", err.Error(),
		"timestamp", time.Now().Format(time.RFC3339),
	)
}

// RuleViolation logs a single validation rule violation.
func (l *Logger) RuleViolation(table, ruleCode, message string, rowID int64) {
	l.Warn("rule violation",
		"table", table,
		"rule_code", ruleCode,
		"message", message,
		"row_id", rowID,
	)
}

// PerformanceWarning logs a performance warning.
func (l *Logger) PerformanceWarning(operation string, duration time.Duration, threshold time.Duration) {
	l.Warn("performance warning",
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
		"threshold_ms", threshold.Milliseconds(),
		"exceeded_by_ms", (duration - threshold).Milliseconds(),
	)
}

// LinkStart logs the start of the trip-linking pass for one person-day.
func (l *Logger) LinkStart(personID, dayNum int64, tripCount int) {
	l.Info("starting trip linking",
		"person_id", personID,
		"day_num", dayNum,
		"unlinked_trip_count", tripCount,
	)
}

// LinkComplete logs the completion of trip linking for one person-day.
func (l *Logger) LinkComplete(personID, dayNum int64, linkedCount int, duration time.Duration) {
	l.Info("trip linking completed",
		"person_id", personID,
		"day_num", dayNum,
		"linked_trip_count", linkedCount,
		"duration_ms", duration.Milliseconds(),
	)
}

// TourStageStart logs the start of one tour-extractor stage.
func (l *Logger) TourStageStart(stage string, dayCount int) {
	l.Info("starting tour extraction stage",
		"stage", stage,
		"day_count", dayCount,
		"timestamp", time.Now().Format(time.RFC3339),
	)
}

// TourStageComplete logs the completion of one tour-extractor stage.
func (l *Logger) TourStageComplete(stage string, duration time.Duration, tourCount int) {
	l.Info("tour extraction stage completed",
		"stage", stage,
		"duration_ms", duration.Milliseconds(),
		"tour_count", tourCount,
	)
}

// RowBatchProgress logs progress through a batched row-level validation
// pass (spec's ~10k-row batches).
func (l *Logger) RowBatchProgress(table string, batchStart, batchEnd, totalRows int) {
	l.Info("row batch validated",
		"table", table,
		"batch_start", batchStart,
		"batch_end", batchEnd,
		"total_rows", totalRows,
	)
}

// ConfigurationLoaded logs successful configuration loading.
func (l *Logger) ConfigurationLoaded(configPath string, customCheckCount int) {
	l.Info("configuration loaded",
		"config_path", configPath,
		"custom_check_count", customCheckCount,
	)
}

// MemoryUsage logs current memory usage statistics.
func (l *Logger) MemoryUsage(operation string, allocMB, sysMB float64) {
	l.Debug("memory usage",
		"operation", operation,
		"alloc_mb", allocMB,
		"sys_mb", sysMB,
	)
}

// IsLevelEnabled checks if a log level is enabled.
func (l *Logger) IsLevelEnabled(level LogLevel) bool {
	return l.level <= level.ToSlogLevel()
}

// Global logger instance for convenience.
var defaultLogger = NewDefaultLogger()

// SetDefaultLogger sets the global default logger.
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the global default logger.
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// Convenience functions for global logger.

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message using the default logger.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// ValidationStart logs validation start using the default logger.
func ValidationStart(datasetLabel string) {
	defaultLogger.ValidationStart(datasetLabel)
}

// ValidationComplete logs validation completion using the default logger.
func ValidationComplete(datasetLabel string, duration time.Duration, issuesFound int, hasError bool) {
	defaultLogger.ValidationComplete(datasetLabel, duration, issuesFound, hasError)
}

// ValidationError logs a validation error using the default logger.
func ValidationError(table string, err error) {
	defaultLogger.ValidationError(table, err)
}

// RuleViolation logs a rule violation using the default logger.
func RuleViolation(table, ruleCode, message string, rowID int64) {
	defaultLogger.RuleViolation(table, ruleCode, message, rowID)
}
